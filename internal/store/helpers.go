package store

import "slices"

func indexByID[T any](items []T, id string, idOf func(*T) string) int {
	return slices.IndexFunc(items, func(item T) bool { return idOf(&item) == id })
}

// updateByID runs fn on the item with id, or returns ErrNotFound.
func updateByID[T any](items []T, kind, id string, idOf func(*T) string, fn func(*T) error) error {
	i := indexByID(items, id, idOf)
	if i < 0 {
		return notFound(kind, id)
	}
	return fn(&items[i])
}

// removeByID returns items without the item with id, or ErrNotFound.
func removeByID[T any](items []T, kind, id string, idOf func(*T) string) ([]T, error) {
	i := indexByID(items, id, idOf)
	if i < 0 {
		return items, notFound(kind, id)
	}
	return slices.Delete(items, i, i+1), nil
}

func removeString(list []string, v string) []string {
	return slices.DeleteFunc(list, func(s string) bool { return s == v })
}
