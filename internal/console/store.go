// Package console implements the standalone single-process todo clone: an
// in-memory item store with a command-line front and a terminal UI. It has
// no relation to the web service, no auth, and no persistence.
package console

// Status of a console item. Only two values; completion is a one-way flag
// here, unlike the service's paired transitions.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Item is a single console todo entry.
type Item struct {
	ID          int
	Title       string
	Description string
	Status      Status
}

// Store keeps the session's items. It is an injected handle, not package
// state, so two fronts (CLI, TUI) can own independent sessions. Not safe for
// concurrent use; both fronts are single-goroutine.
type Store struct {
	nextID int
	items  []Item
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

// Add appends a new pending item and returns it.
func (s *Store) Add(title, description string) Item {
	item := Item{ID: s.nextID, Title: title, Description: description, Status: StatusPending}
	s.items = append(s.items, item)
	s.nextID++
	return item
}

// All returns the items in insertion order.
func (s *Store) All() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Complete marks the item completed. The second return is false when no
// item has that id.
func (s *Store) Complete(id int) (Item, bool) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = StatusCompleted
			return s.items[i], true
		}
	}
	return Item{}, false
}

// Update changes title and/or description; nil leaves the field as is.
func (s *Store) Update(id int, title, description *string) (Item, bool) {
	for i := range s.items {
		if s.items[i].ID == id {
			if title != nil {
				s.items[i].Title = *title
			}
			if description != nil {
				s.items[i].Description = *description
			}
			return s.items[i], true
		}
	}
	return Item{}, false
}

// Remove deletes the item and returns it.
func (s *Store) Remove(id int) (Item, bool) {
	for i := range s.items {
		if s.items[i].ID == id {
			removed := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			return removed, true
		}
	}
	return Item{}, false
}
