// Package categories owns the user's category tags: loading them from the
// settings area, upgrading sets saved by older releases, and the add, edit
// and delete operations behind the category picker.
//
// The set is never empty once loaded. Deleting the last category restores
// the built-in defaults.
package categories
