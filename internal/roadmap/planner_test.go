package roadmap_test

import (
	"testing"

	"github.com/eduflow-app/eduflow/internal/catalog"
	"github.com/eduflow-app/eduflow/internal/roadmap"
)

func items(ids ...string) []catalog.CourseItem {
	out := make([]catalog.CourseItem, len(ids))
	for i, id := range ids {
		out[i] = catalog.CourseItem{ID: id}
	}
	return out
}

func ids(plan roadmap.DailyPlan) []string {
	out := make([]string, len(plan.Items))
	for i, item := range plan.Items {
		out[i] = item.ID
	}
	return out
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name  string
		items []catalog.CourseItem
		days  int
		want  [][]string
	}{
		{
			name:  "five items over two days",
			items: items("A", "B", "C", "D", "E"),
			days:  2,
			want:  [][]string{{"A", "B", "C"}, {"D", "E"}},
		},
		{
			name:  "five items over three days",
			items: items("A", "B", "C", "D", "E"),
			days:  3,
			want:  [][]string{{"A", "B"}, {"C", "D"}, {"E"}},
		},
		{
			name:  "even split",
			items: items("A", "B", "C", "D"),
			days:  2,
			want:  [][]string{{"A", "B"}, {"C", "D"}},
		},
		{
			name:  "single day gets everything",
			items: items("A", "B", "C"),
			days:  1,
			want:  [][]string{{"A", "B", "C"}},
		},
		{
			name:  "more days than items leaves trailing days empty",
			items: items("A", "B"),
			days:  4,
			want:  [][]string{{"A"}, {"B"}, {}, {}},
		},
		{
			name:  "no items",
			items: nil,
			days:  3,
			want:  [][]string{{}, {}, {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := roadmap.Plan(tt.items, tt.days)
			if err != nil {
				t.Fatalf("Plan() error = %v", err)
			}
			if len(got) != tt.days {
				t.Fatalf("Plan() = %d days, want %d", len(got), tt.days)
			}
			for day, plan := range got {
				if plan.Day != day+1 {
					t.Errorf("day index = %d, want %d", plan.Day, day+1)
				}
				gotIDs := ids(plan)
				wantIDs := tt.want[day]
				if len(gotIDs) != len(wantIDs) {
					t.Errorf("day %d = %v, want %v", day+1, gotIDs, wantIDs)
					continue
				}
				for i := range wantIDs {
					if gotIDs[i] != wantIDs[i] {
						t.Errorf("day %d = %v, want %v", day+1, gotIDs, wantIDs)
						break
					}
				}
			}
		})
	}
}

func TestPlan_InvalidDays(t *testing.T) {
	for _, days := range []int{0, -1} {
		if _, err := roadmap.Plan(items("A"), days); err == nil {
			t.Errorf("Plan(items, %d) should fail", days)
		}
	}
}

func TestPlan_DaysCapped(t *testing.T) {
	// Buckets are allocated before any work, so a huge day count must be
	// rejected rather than allocated.
	for _, days := range []int{roadmap.MaxDays + 1, 2_000_000_000} {
		if _, err := roadmap.Plan(items("A"), days); err == nil {
			t.Errorf("Plan(items, %d) should fail", days)
		}
	}

	plans, err := roadmap.Plan(items("A"), roadmap.MaxDays)
	if err != nil {
		t.Fatalf("Plan(items, MaxDays) error = %v", err)
	}
	if len(plans) != roadmap.MaxDays {
		t.Errorf("Plan() = %d days, want %d", len(plans), roadmap.MaxDays)
	}
}

func TestPlan_PartitionIsLossless(t *testing.T) {
	// Concatenating all days in order must reproduce the input exactly,
	// whatever the day count.
	source := items("A", "B", "C", "D", "E", "F", "G")
	for days := 1; days <= 10; days++ {
		plans, err := roadmap.Plan(source, days)
		if err != nil {
			t.Fatalf("Plan(_, %d) error = %v", days, err)
		}

		var flattened []string
		for _, plan := range plans {
			flattened = append(flattened, ids(plan)...)
		}
		if len(flattened) != len(source) {
			t.Fatalf("days=%d: %d items after partition, want %d", days, len(flattened), len(source))
		}
		for i, id := range flattened {
			if id != source[i].ID {
				t.Errorf("days=%d: position %d = %s, want %s", days, i, id, source[i].ID)
			}
		}
	}
}

func TestPlan_ManyDaysOneItemEach(t *testing.T) {
	source := items("A", "B", "C")
	plans, err := roadmap.Plan(source, 5)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	for day := 0; day < 3; day++ {
		if len(plans[day].Items) != 1 {
			t.Errorf("day %d = %d items, want 1", day+1, len(plans[day].Items))
		}
	}
	for day := 3; day < 5; day++ {
		if len(plans[day].Items) != 0 {
			t.Errorf("day %d = %d items, want 0", day+1, len(plans[day].Items))
		}
	}
}
