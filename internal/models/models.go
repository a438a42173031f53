package models

// All lists every table in dependency order, parents first.
func All() []any {
	return []any{
		&User{},
		&Project{},
		&Milestone{},
		&Task{},
		&Proposal{},
		&ProposalSection{},
		&Document{},
	}
}
