// Package library owns the saved-resource shape and its persistence.
// The Store interface is the seam the completion handler writes through;
// FSStore is the default filesystem implementation.
package library
