package domain

// Activity is the single managed record: a titled entry with a pending flag.
type Activity struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Pending  bool   `json:"pending"`
}

// NewActivity carries the fields a store needs to create a record. The store assigns the ID.
type NewActivity struct {
	Title    string
	Subtitle string
	Pending  bool
}

// ActivityPatch is a sparse set of field changes. Nil fields are left untouched.
type ActivityPatch struct {
	Title    *string
	Subtitle *string
	Pending  *bool
}

// Empty reports whether the patch changes nothing.
func (p ActivityPatch) Empty() bool {
	return p.Title == nil && p.Subtitle == nil && p.Pending == nil
}

// Apply returns a copy of a with the patch applied.
func (p ActivityPatch) Apply(a Activity) Activity {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Subtitle != nil {
		a.Subtitle = *p.Subtitle
	}
	if p.Pending != nil {
		a.Pending = *p.Pending
	}
	return a
}
