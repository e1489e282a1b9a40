package information

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/holocron/pkg/catalog"
	"github.com/agentstation/holocron/pkg/errors"
	"github.com/agentstation/holocron/pkg/logging"
	"github.com/agentstation/holocron/pkg/numeral"
	"github.com/agentstation/holocron/pkg/reference"
)

const testBase = "https://swapi.dev/api"

var testTemplates = reference.MustCompile(reference.Config{
	BaseURL: testBase,
	Segments: map[catalog.ResourceType]string{
		catalog.ResourcePerson:   "people",
		catalog.ResourceStarship: "starships",
		catalog.ResourcePlanet:   "planets",
	},
})

func ref(segment string, id int) string {
	return fmt.Sprintf("%s/%s/%d/", testBase, segment, id)
}

// fakeCatalog serves documents and errors keyed by resource and id.
type fakeCatalog struct {
	docs   map[string]catalog.Document
	errs   map[string]error
	panics map[string]bool
	calls  atomic.Int32
}

func key(rt catalog.ResourceType, id catalog.ID) string {
	return rt.String() + "/" + id.String()
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		docs:   map[string]catalog.Document{},
		errs:   map[string]error{},
		panics: map[string]bool{},
	}
}

func (f *fakeCatalog) set(rt catalog.ResourceType, id catalog.ID, doc catalog.Document) *fakeCatalog {
	f.docs[key(rt, id)] = doc
	return f
}

func (f *fakeCatalog) fail(rt catalog.ResourceType, id catalog.ID, err error) *fakeCatalog {
	f.errs[key(rt, id)] = err
	return f
}

func (f *fakeCatalog) Fetch(_ context.Context, rt catalog.ResourceType, id catalog.ID) (catalog.Document, error) {
	f.calls.Add(1)
	k := key(rt, id)
	if f.panics[k] {
		panic("catalog exploded")
	}
	if err, ok := f.errs[k]; ok {
		return nil, err
	}
	if doc, ok := f.docs[k]; ok {
		return doc, nil
	}
	return nil, errors.NewAPIError(rt.String(), 404, "not found")
}

func newTestService(fc *fakeCatalog, opts ...Option) *Service {
	opts = append([]Option{WithLogger(logging.NewNopLogger())}, opts...)
	return New(fc, testTemplates, opts...)
}

func TestResolveStarshipOf(t *testing.T) {
	fc := newFakeCatalog().
		set(catalog.ResourcePerson, 4, catalog.Document{
			catalog.FieldStarships: []any{ref("starships", 13)},
		}).
		set(catalog.ResourceStarship, 13, catalog.Document{
			catalog.FieldName:  "TIE Advanced x1",
			catalog.FieldModel: "Twin Ion Engine Advanced x1",
			catalog.FieldClass: "Starfighter",
		})

	got, err := newTestService(fc).ResolveStarshipOf(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "TIE Advanced x1", got.Name)
	assert.Equal(t, "Starfighter", got.Class)
	assert.Equal(t, int32(2), fc.calls.Load())
}

func TestResolveStarshipOfFailures(t *testing.T) {
	tests := []struct {
		name      string
		starships any
		wantParse bool
	}{
		{"empty list", []any{}, true},
		{"blank entry", []any{"   "}, true},
		{"non-text entry", []any{13.0}, true},
		{"wrong segment", []any{ref("planets", 13)}, true},
		{"overflowing id", []any{testBase + "/starships/2147483648/"}, true},
		{"referenced starship missing", []any{ref("starships", 77)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := newFakeCatalog().set(catalog.ResourcePerson, 4, catalog.Document{
				catalog.FieldStarships: tt.starships,
			})

			got, err := newTestService(fc).ResolveStarshipOf(context.Background(), 4)
			require.Error(t, err)
			assert.True(t, got.IsZero())
			assert.Equal(t, tt.wantParse, errors.IsParse(err))
			if !tt.wantParse {
				assert.True(t, errors.IsNotFound(err))
			}
		})
	}
}

func TestResolveStarshipOfPersonMissing(t *testing.T) {
	fc := newFakeCatalog().fail(catalog.ResourcePerson, 4, errors.NewAPIError("person", 503, "down"))

	_, err := newTestService(fc).ResolveStarshipOf(context.Background(), 4)
	require.Error(t, err)
	assert.Equal(t, 503, errors.StatusCode(err))
	assert.Equal(t, int32(1), fc.calls.Load())
}

func TestResolveCrewOf(t *testing.T) {
	tests := []struct {
		name string
		crew any
		want int64
	}{
		{"zero", "0", 0},
		{"grouped", "1,000,000", 1000000},
		{"death star", "342,953", 342953},
		{"padded", " 47,060 ", 47060},
		{"fraction truncates", "5.9", 5},
		{"json number", 30.0, 30},
		{"json fraction", 2.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := newFakeCatalog().set(catalog.ResourceStarship, 9, catalog.Document{catalog.FieldCrew: tt.crew})

			got, err := newTestService(fc).ResolveCrewOf(context.Background(), 9)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCrewOfRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  catalog.Document
	}{
		{"not a number", catalog.Document{catalog.FieldCrew: "n/a"}},
		{"range", catalog.Document{catalog.FieldCrew: "30-165"}},
		{"blank", catalog.Document{catalog.FieldCrew: "  "}},
		{"missing", catalog.Document{}},
		{"null", catalog.Document{catalog.FieldCrew: nil}},
		{"list", catalog.Document{catalog.FieldCrew: []any{"1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := newFakeCatalog().set(catalog.ResourceStarship, 9, tt.doc)

			got, err := newTestService(fc).ResolveCrewOf(context.Background(), 9)
			require.Error(t, err)
			assert.True(t, errors.IsParse(err))
			assert.Contains(t, err.Error(), "no valid crew number found")
			assert.Zero(t, got)
		})
	}
}

func TestResolveCrewOfLogsMalformedText(t *testing.T) {
	tl := logging.NewTestLogger(t)
	fc := newFakeCatalog().set(catalog.ResourceStarship, 9, catalog.Document{catalog.FieldCrew: "unknown"})

	_, err := New(fc, testTemplates, WithLogger(tl.Logger)).ResolveCrewOf(context.Background(), 9)
	require.Error(t, err)

	entries := tl.EntriesWith("crew", "unknown")
	require.Len(t, entries, 1)
	assert.Equal(t, "warn", entries[0]["level"])
}

func TestResolveCrewOfLogsToContextLogger(t *testing.T) {
	service := logging.NewTestLogger(t)
	caller := logging.NewTestLogger(t)
	fc := newFakeCatalog().set(catalog.ResourceStarship, 9, catalog.Document{catalog.FieldCrew: "unknown"})

	ctx := logging.WithPipeline(logging.WithLogger(context.Background(), caller.Logger), PipelineCrew)
	_, err := New(fc, testTemplates, WithLogger(service.Logger)).ResolveCrewOf(ctx, 9)
	require.Error(t, err)

	entries := caller.EntriesWith("crew", "unknown")
	require.Len(t, entries, 1)
	assert.Equal(t, PipelineCrew, entries[0]["pipeline"])
	assert.Zero(t, service.Count())
}

func TestResolveCrewOfLocaleFormat(t *testing.T) {
	fc := newFakeCatalog().set(catalog.ResourceStarship, 9, catalog.Document{catalog.FieldCrew: "342.953"})
	de, err := numeral.ForLocale("de-DE")
	require.NoError(t, err)

	got, err := newTestService(fc, WithNumeralFormat(de)).ResolveCrewOf(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(342953), got)
}

func TestIsResident(t *testing.T) {
	tests := []struct {
		name      string
		residents any
		person    catalog.ID
		want      bool
	}{
		{"present", []any{ref("people", 5), ref("people", 13)}, 13, true},
		{"first", []any{ref("people", 5), ref("people", 13)}, 5, true},
		{"absent", []any{ref("people", 5), ref("people", 13)}, 99, false},
		{"empty", []any{}, 5, false},
		{"skips junk", []any{nil, 7.0, "", "garbage", ref("planets", 5), ref("people", 5)}, 5, true},
		{"prefix digit is not a match", []any{ref("people", 55)}, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := newFakeCatalog().set(catalog.ResourcePlanet, 2, catalog.Document{catalog.FieldResidents: tt.residents})

			got, err := newTestService(fc).IsResident(context.Background(), 2, tt.person)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsResidentWithoutList(t *testing.T) {
	for name, doc := range map[string]catalog.Document{
		"missing":     {},
		"wrong shape": {catalog.FieldResidents: "people/5"},
	} {
		t.Run(name, func(t *testing.T) {
			fc := newFakeCatalog().set(catalog.ResourcePlanet, 2, doc)

			got, err := newTestService(fc).IsResident(context.Background(), 2, 5)
			require.Error(t, err)
			assert.True(t, errors.IsParse(err))
			assert.False(t, got)
		})
	}
}
