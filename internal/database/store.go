package database

// Store is the data layer the lifecycle hands the working file to. The
// relational schema, migrations, and business CRUD live behind this
// interface and are out of scope here; the lifecycle only cares that the
// store opens a file path and releases it on Close.
type Store interface {
	// Open opens the data layer against the plaintext file at path,
	// creating the file if it does not exist.
	Open(path string) error

	// Close releases the data layer's hold on the file. After Close
	// returns nil, no handle to the working file remains open.
	Close() error
}
