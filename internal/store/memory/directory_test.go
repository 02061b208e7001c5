package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"svcmap/internal/domain"
	"svcmap/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(zap.NewNop())
	require.NoError(t, s.Init(context.Background()))
	return s
}

func ids(records []model.ServiceRecord) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestInitIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, before, 4)

	require.NoError(t, s.Init(ctx))
	after, err := s.All(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestAllReturnsCopies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.All(ctx)
	require.NoError(t, err)
	first[0].Name = "mutated"
	first[0].Coordinates.Lat = 0
	first[0].Hours["Monday"] = "mutated"

	second, err := s.All(ctx)
	require.NoError(t, err)
	require.Equal(t, "Community Food Pantry", second[0].Name)
	require.Equal(t, 38.7190, second[0].Coordinates.Lat)
	require.Equal(t, "9:00 AM - 4:00 PM", second[0].Hours["Monday"])
}

func TestEmptyFilterMeansNoFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	all, err := s.All(ctx)
	require.NoError(t, err)

	t.Run("categories", func(t *testing.T) {
		forNil, err := s.ByCategories(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, all, forNil)

		forEmpty, err := s.ByCategories(ctx, []string{})
		require.NoError(t, err)
		require.Equal(t, all, forEmpty)
	})

	t.Run("source orgs", func(t *testing.T) {
		forNil, err := s.BySourceOrgs(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, all, forNil)
	})

	t.Run("filter", func(t *testing.T) {
		result, err := s.Filter(ctx, model.Query{})
		require.NoError(t, err)
		require.Equal(t, all, result)
	})
}

func TestByCategories(t *testing.T) {
	s := newTestStore(t)

	food, err := s.ByCategories(context.Background(), []string{"Food"})
	require.NoError(t, err)
	require.Equal(t, []int64{1, 3}, ids(food))

	multi, err := s.ByCategories(context.Background(), []string{"Food", "Housing"})
	require.NoError(t, err)
	require.Equal(t, []int64{1, 3, 4}, ids(multi))
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("blank keywords return everything", func(t *testing.T) {
		for _, kw := range []string{"", "   "} {
			result, err := s.Search(ctx, kw)
			require.NoError(t, err)
			require.Len(t, result, 4, "keyword %q", kw)
		}
	})

	t.Run("case insensitive across fields", func(t *testing.T) {
		byName, err := s.Search(ctx, "PANTRY")
		require.NoError(t, err)
		require.Equal(t, []int64{1}, ids(byName))

		byOrg, err := s.Search(ctx, "heartland")
		require.NoError(t, err)
		require.Equal(t, []int64{1, 3}, ids(byOrg))

		byAddress, err := s.Search(ctx, "delmar")
		require.NoError(t, err)
		require.Equal(t, []int64{4}, ids(byAddress))
	})

	t.Run("no match is empty, not an error", func(t *testing.T) {
		result, err := s.Search(ctx, "zz-no-such-token")
		require.NoError(t, err)
		require.Empty(t, result)
	})
}

func TestFilterIsConjunctive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	combined, err := s.Filter(ctx, model.Query{
		Categories: []string{"Food"},
		SourceOrgs: []string{"Heartland Food Network"},
		Keyword:    "market",
	})
	require.NoError(t, err)

	byCategory, err := s.ByCategories(ctx, []string{"Food"})
	require.NoError(t, err)
	byOrg, err := s.BySourceOrgs(ctx, []string{"Heartland Food Network"})
	require.NoError(t, err)
	byKeyword, err := s.Search(ctx, "market")
	require.NoError(t, err)

	expected := intersect(intersect(ids(byCategory), ids(byOrg)), ids(byKeyword))
	require.Equal(t, expected, ids(combined))
	require.Equal(t, []int64{3}, ids(combined))
}

func intersect(a, b []int64) []int64 {
	set := make(map[int64]struct{}, len(b))
	for _, id := range b {
		set[id] = struct{}{}
	}
	var out []int64
	for _, id := range a {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func TestByID(t *testing.T) {
	s := newTestStore(t)

	record, ok, err := s.ByID(context.Background(), 2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Legal Aid Clinic", record.Name)

	_, ok, err = s.ByID(context.Background(), 99)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDerivedSetsSorted(t *testing.T) {
	s := newTestStore(t)

	categories, err := s.Categories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Food", "Housing", "Legal Aid"}, categories)

	orgs, err := s.SourceOrganizations(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Gateway Legal Services", "Heartland Food Network", "Shelter Forward"}, orgs)
}

func TestWithinRadius(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("zero radius matches only the exact point", func(t *testing.T) {
		result, err := s.WithinRadius(ctx, 38.7190, -90.4218, 0)
		require.NoError(t, err)
		require.Equal(t, []int64{1}, ids(result))
	})

	t.Run("records without coordinates are excluded", func(t *testing.T) {
		result, err := s.WithinRadius(ctx, 38.6620, -90.4218, 1000)
		require.NoError(t, err)
		require.Equal(t, []int64{1, 3, 4}, ids(result))
	})

	t.Run("radius bounds the result", func(t *testing.T) {
		// Ids 1 and 3 are ~3.9 miles apart on the same meridian.
		result, err := s.WithinRadius(ctx, 38.6620, -90.4218, 5)
		require.NoError(t, err)
		require.Equal(t, []int64{1, 3}, ids(result))
	})
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields are rejected in order", func(t *testing.T) {
		s := newTestStore(t)
		cases := []struct {
			record model.ServiceRecord
			field  string
		}{
			{model.ServiceRecord{}, "name"},
			{model.ServiceRecord{Name: "x"}, "organization"},
			{model.ServiceRecord{Name: "x", Organization: "y"}, "address"},
			{model.ServiceRecord{Name: "x", Organization: "y", Address: "z"}, "category"},
		}
		for _, tc := range cases {
			_, err := s.Add(ctx, tc.record)
			require.ErrorIs(t, err, domain.ErrMissingField)
			var missing *domain.MissingFieldError
			require.ErrorAs(t, err, &missing)
			require.Equal(t, tc.field, missing.Field)
		}

		all, err := s.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 4, "nothing applied on failure")
	})

	t.Run("round trip with defaults", func(t *testing.T) {
		s := newTestStore(t)
		created, err := s.Add(ctx, model.ServiceRecord{
			Name:         "Warm Line",
			Organization: "Peer Support Collective",
			Address:      "100 N Grand Blvd, St. Louis, MO 63103",
			Category:     "Mental Health",
		})
		require.NoError(t, err)
		require.Equal(t, int64(5), created.ID)
		require.Equal(t, domain.DefaultDistance, created.Distance)
		require.Equal(t, domain.DefaultSourceOrg, created.SourceOrg)
		require.Equal(t, domain.DefaultEligibility, created.Eligibility)
		require.Equal(t, domain.DefaultApplication, created.Application)
		require.NotNil(t, created.Hours)
		require.Empty(t, created.Hours)

		got, ok, err := s.ByID(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, created, got)
	})

	t.Run("derived sets updated incrementally", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.Add(ctx, model.ServiceRecord{
			Name:         "Warm Line",
			Organization: "Peer Support Collective",
			Address:      "100 N Grand Blvd",
			Category:     "Mental Health",
		})
		require.NoError(t, err)

		categories, err := s.Categories(ctx)
		require.NoError(t, err)
		require.Contains(t, categories, "Mental Health")

		orgs, err := s.SourceOrganizations(ctx)
		require.NoError(t, err)
		require.Contains(t, orgs, domain.DefaultSourceOrg)
	})
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, stats.TotalServices)
	require.Equal(t, 3, stats.CategoryCount)
	require.Equal(t, 3, stats.SourceOrgCount)
	require.Equal(t, 2, stats.ByCategory["Food"])
	require.Equal(t, 1, stats.ByCategory["Housing"])
	require.Equal(t, 2, stats.BySourceOrg["Heartland Food Network"])

	// Stats are computed fresh, so a mutation shows up immediately.
	_, err = s.Add(ctx, model.ServiceRecord{
		Name:         "Second Pantry",
		Organization: "Heartland Food Network",
		Address:      "1 Food St",
		Category:     "Food",
	})
	require.NoError(t, err)

	stats, err = s.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, stats.TotalServices)
	require.Equal(t, 3, stats.ByCategory["Food"])
}
