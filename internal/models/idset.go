package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/lib/pq"
)

// IDSet is an insertion-ordered set of document ids. It is stored as TEXT[]
// in Postgres and as an array in Mongo.
type IDSet []string

func NewIDSet(ids ...string) IDSet {
	set := make(IDSet, 0, len(ids))
	for _, id := range ids {
		set.Add(id)
	}
	return set
}

func (s IDSet) Contains(id string) bool {
	return slices.Contains(s, id)
}

// Add reports whether id was not present before.
func (s *IDSet) Add(id string) bool {
	if s.Contains(id) {
		return false
	}
	*s = append(*s, id)
	return true
}

// Remove reports whether id was present.
func (s *IDSet) Remove(id string) bool {
	idx := slices.Index(*s, id)
	if idx < 0 {
		return false
	}
	*s = slices.Delete(*s, idx, idx+1)
	return true
}

func (s IDSet) Len() int {
	return len(s)
}

// Slice returns a copy that is never nil.
func (s IDSet) Slice() []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func (s IDSet) Clone() IDSet {
	return IDSet(s.Slice())
}

func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

func (s *IDSet) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("ошибка чтения набора идентификаторов: %w", err)
	}
	*s = NewIDSet(arr...)
	return nil
}

func (s IDSet) Value() (driver.Value, error) {
	return pq.StringArray(s.Slice()).Value()
}
