package store

var (
	bItems    = []byte("items")    // id -> itemBytes
	bAliases  = []byte("aliases")  // old slug -> item id
	bSettings = []byte("settings") // name -> value
)
