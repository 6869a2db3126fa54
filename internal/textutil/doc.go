// Package textutil provides the string normalization passes shared by the
// loader and the matchers: cell cleanup, CAS number normalization, and the
// folded comparison key used for synonym joins.
package textutil
