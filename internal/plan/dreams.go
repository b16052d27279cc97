package plan

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"dreamplan/internal/store"
)

type DreamInput struct {
	Type        store.DreamType
	Title       string
	Description string
	SphereID    string
	PeriodKind  store.PeriodKind
	PeriodYears int
	PeriodDate  string
	PrayerText  string
	CoverImage  string
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

// CreateDream appends a new dream. Prayers carry no sphere or period.
func CreateDream(s store.Store, in DreamInput, now time.Time) (store.Store, store.Dream, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return s, store.Dream{}, err
	}
	if !in.Type.IsValid() {
		return s, store.Dream{}, fmt.Errorf("invalid dream type: %q", in.Type)
	}

	d := store.Dream{
		ID:          store.NewID("dream", now),
		Type:        in.Type,
		Title:       title,
		Description: in.Description,
		SphereID:    in.SphereID,
		PeriodKind:  in.PeriodKind,
		PeriodYears: in.PeriodYears,
		PeriodDate:  in.PeriodDate,
		PrayerText:  in.PrayerText,
		CoverImage:  in.CoverImage,
		Status:      store.DreamActive,
		CreatedAt:   now,
		SortOrder:   nextSortOrder(s.Dreams),
	}
	if d.Type == store.DreamTypePrayer {
		d.SphereID = ""
		d.PeriodKind = ""
		d.PeriodYears = 0
		d.PeriodDate = ""
	}

	s.Dreams = append(append([]store.Dream{}, s.Dreams...), d)
	return s, d, nil
}

func nextSortOrder(dreams []store.Dream) int64 {
	var max int64
	for i := range dreams {
		if dreams[i].SortOrder > max {
			max = dreams[i].SortOrder
		}
	}
	return max + 1
}

// UpdateDream replaces the dream with the same id wholesale (the edit
// form resubmits the complete entity).
func UpdateDream(s store.Store, d store.Dream) (store.Store, error) {
	dreams, ok := replaceDream(s.Dreams, d.ID, func(store.Dream) store.Dream { return d })
	if !ok {
		return s, fmt.Errorf("dream %s not found", d.ID)
	}
	s.Dreams = dreams
	return s, nil
}

func replaceDream(dreams []store.Dream, id string, fn func(store.Dream) store.Dream) ([]store.Dream, bool) {
	out := make([]store.Dream, len(dreams))
	found := false
	for i, d := range dreams {
		if d.ID == id {
			d = fn(d)
			found = true
		}
		out[i] = d
	}
	return out, found
}

// FocusedDreams returns the dreams currently occupying focus slots.
func FocusedDreams(s store.Store) []store.Dream {
	var out []store.Dream
	for _, d := range s.Dreams {
		if d.IsFocused {
			out = append(out, d)
		}
	}
	return out
}

// ToggleDreamFocus frees the dream's focus slot, or claims one. The first
// dream ever focused also becomes leading. With all slots taken the
// operation is refused; use ReplaceFocus.
func ToggleDreamFocus(s store.Store, dreamID string) (store.Store, error) {
	d := s.DreamByID(dreamID)
	if d == nil {
		return s, fmt.Errorf("dream %s not found", dreamID)
	}

	if d.IsFocused {
		dreams, _ := replaceDream(s.Dreams, dreamID, func(d store.Dream) store.Dream {
			d.IsFocused = false
			d.IsLeading = false
			return d
		})
		s.Dreams = dreams
		return s, nil
	}

	focused := len(FocusedDreams(s))
	if focused >= MaxFocusedDreams {
		return s, FocusLimitError{Limit: MaxFocusedDreams}
	}
	dreams, _ := replaceDream(s.Dreams, dreamID, func(d store.Dream) store.Dream {
		d.IsFocused = true
		d.IsLeading = focused == 0
		return d
	})
	s.Dreams = dreams
	return s, nil
}

// ReplaceFocus swaps the focus slot of oldID over to newID, carrying the
// leading flag with it.
func ReplaceFocus(s store.Store, oldID, newID string) (store.Store, error) {
	old := s.DreamByID(oldID)
	if old == nil {
		return s, fmt.Errorf("dream %s not found", oldID)
	}
	if !old.IsFocused {
		return s, NotFocusedError{DreamID: oldID}
	}
	if s.DreamByID(newID) == nil {
		return s, fmt.Errorf("dream %s not found", newID)
	}

	wasLeading := old.IsLeading
	out := make([]store.Dream, len(s.Dreams))
	for i, d := range s.Dreams {
		switch d.ID {
		case oldID:
			d.IsFocused = false
			d.IsLeading = false
		case newID:
			d.IsFocused = true
			d.IsLeading = wasLeading
		}
		out[i] = d
	}
	s.Dreams = out
	return s, nil
}

// SetLeadingDream makes the dream the single leader. The target must
// already be focused.
func SetLeadingDream(s store.Store, dreamID string) (store.Store, error) {
	d := s.DreamByID(dreamID)
	if d == nil {
		return s, fmt.Errorf("dream %s not found", dreamID)
	}
	if !d.IsFocused {
		return s, NotFocusedError{DreamID: dreamID}
	}

	out := make([]store.Dream, len(s.Dreams))
	for i, d := range s.Dreams {
		d.IsLeading = d.ID == dreamID
		out[i] = d
	}
	s.Dreams = out
	return s, nil
}

// ArchiveDream moves the dream out of play and frees its focus slot.
func ArchiveDream(s store.Store, dreamID string) (store.Store, error) {
	dreams, ok := replaceDream(s.Dreams, dreamID, func(d store.Dream) store.Dream {
		d.Status = store.DreamArchived
		d.IsFocused = false
		d.IsLeading = false
		return d
	})
	if !ok {
		return s, fmt.Errorf("dream %s not found", dreamID)
	}
	s.Dreams = dreams
	return s, nil
}

// AchieveDream marks the dream achieved and frees its focus slot.
func AchieveDream(s store.Store, dreamID string, now time.Time) (store.Store, error) {
	dreams, ok := replaceDream(s.Dreams, dreamID, func(d store.Dream) store.Dream {
		d.Status = store.DreamAchieved
		d.AchievedAt = &now
		d.IsFocused = false
		d.IsLeading = false
		return d
	})
	if !ok {
		return s, fmt.Errorf("dream %s not found", dreamID)
	}
	s.Dreams = dreams
	return s, nil
}

// SortDreams returns the display order: dreams before prayers, the leader
// first, then focused, then by sortOrder, newest last as a tiebreak.
func SortDreams(dreams []store.Dream) []store.Dream {
	out := append([]store.Dream{}, dreams...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Type != b.Type {
			return a.Type == store.DreamTypeDream
		}
		if a.Type == store.DreamTypeDream {
			if a.IsLeading != b.IsLeading {
				return a.IsLeading
			}
			if a.IsFocused != b.IsFocused {
				return a.IsFocused
			}
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out
}

// CreateSphere appends a custom life sphere.
func CreateSphere(s store.Store, name, iconID string, now time.Time) (store.Store, store.Sphere, error) {
	n, err := normalizeTitle(name)
	if err != nil {
		return s, store.Sphere{}, err
	}
	sp := store.Sphere{
		ID:        store.NewID("sphere", now),
		Name:      n,
		IconID:    iconID,
		SortOrder: int64(len(s.Spheres)) + 1,
	}
	s.Spheres = append(append([]store.Sphere{}, s.Spheres...), sp)
	return s, sp, nil
}

// UpdateSphere replaces the sphere with the same id.
func UpdateSphere(s store.Store, sp store.Sphere) (store.Store, error) {
	out := make([]store.Sphere, len(s.Spheres))
	found := false
	for i, cur := range s.Spheres {
		if cur.ID == sp.ID {
			cur = sp
			found = true
		}
		out[i] = cur
	}
	if !found {
		return s, fmt.Errorf("sphere %s not found", sp.ID)
	}
	s.Spheres = out
	return s, nil
}

// DeleteSphere removes a sphere. Refused while any active dream points at it.
func DeleteSphere(s store.Store, sphereID string) (store.Store, error) {
	for _, d := range s.Dreams {
		if d.SphereID == sphereID && d.Status == store.DreamActive {
			return s, SphereInUseError{SphereID: sphereID}
		}
	}
	out := s.Spheres[:0:0]
	found := false
	for _, sp := range s.Spheres {
		if sp.ID == sphereID {
			found = true
			continue
		}
		out = append(out, sp)
	}
	if !found {
		return s, fmt.Errorf("sphere %s not found", sphereID)
	}
	s.Spheres = out
	return s, nil
}
