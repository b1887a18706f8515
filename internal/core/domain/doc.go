// Package domain contains the core business entities and errors for
// scriptforge. Types here have no dependencies on adapters or services;
// they are the vocabulary shared by every layer.
package domain
