package db

// Repositories groups the stores that live under one data directory.
type Repositories struct {
	Entries *EntryRepository
}

func NewRepositories(dataDir string) *Repositories {
	return &Repositories{
		Entries: NewEntryRepository(dataDir),
	}
}
