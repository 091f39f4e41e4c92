// Package files discovers the dataset files present in the data directory.
package files
