// Package normalisers turns files into corpus documents for import.
// Each normaliser handles a set of file extensions; the Registry picks
// one by the extension of the imported file.
package normalisers
