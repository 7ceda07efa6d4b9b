package memory

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/MrSnakeDoc/stash/internal/domain"
)

func TestStoreProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("ids strictly increase across creates and deletes", prop.ForAll(
		func(n int, deleteMask []bool) bool {
			s := NewNoteStore(WithClock(newTickClock().Now))
			var last int64
			for i := 0; i < n; i++ {
				note := s.Create(domain.Note{Title: "t"})
				if note.ID <= last {
					return false
				}
				last = note.ID
				if i < len(deleteMask) && deleteMask[i] {
					s.Delete(note.ID)
				}
			}
			return true
		},
		gen.IntRange(1, 50),
		gen.SliceOf(gen.Bool()),
	))

	properties.Property("update keeps id and createdAt", prop.ForAll(
		func(title, content string, tags []string) bool {
			s := NewNoteStore(WithClock(newTickClock().Now))
			orig := s.Create(domain.Note{Title: "t", Content: "c"})

			got, ok := s.Update(orig.ID, domain.NotePatch{Title: &title, Content: &content, Tags: &tags})
			return ok &&
				got.ID == orig.ID &&
				got.CreatedAt.Equal(orig.CreatedAt) &&
				!got.UpdatedAt.Before(got.CreatedAt) &&
				got.Tags != nil
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("delete is idempotent", prop.ForAll(
		func(n int) bool {
			s := NewBookmarkStore()
			for i := 0; i < n; i++ {
				s.Create(domain.Bookmark{Title: "t", URL: "https://t.example"})
			}
			first := s.Delete(1)
			second := s.Delete(1)
			_, found := s.Get(1)
			return first && !second && !found && s.Count() == n-1
		},
		gen.IntRange(1, 20),
	))

	properties.Property("search on title is case-insensitive", prop.ForAll(
		func(title string) bool {
			s := NewNoteStore()
			s.Create(domain.Note{Title: title})
			return len(s.Search(strings.ToUpper(title))) == 1 &&
				len(s.Search(strings.ToLower(title))) == 1
		},
		gen.AlphaString().SuchThat(func(v string) bool { return v != "" }),
	))

	properties.Property("list is sorted newest first", prop.ForAll(
		func(n int, touch []int) bool {
			s := NewNoteStore(WithClock(newTickClock().Now))
			for i := 0; i < n; i++ {
				s.Create(domain.Note{Title: "t"})
			}
			for _, id := range touch {
				s.Update(int64(id%n)+1, domain.NotePatch{})
			}
			list := s.List()
			for i := 1; i < len(list); i++ {
				if list[i].UpdatedAt.After(list[i-1].UpdatedAt) {
					return false
				}
			}
			return len(list) == n
		},
		gen.IntRange(1, 30),
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t)
}
