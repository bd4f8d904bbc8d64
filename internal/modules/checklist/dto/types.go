package dto

type EntryOutput struct {
	Line  int
	Label string
	Done  bool
}

type StatusOutput struct {
	Path     string
	Lines    int
	Pending  int
	Done     int
	Eligible int
}

type PendingOutput struct {
	Path    string
	Entries []EntryOutput
}
