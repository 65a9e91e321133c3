package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"mealmind/internal/inventory"
	"mealmind/internal/metrics"
)

type stubPantryStore struct {
	added   []inventory.Item
	failFor string
}

func (s *stubPantryStore) Add(_ context.Context, _ string, item inventory.Item) (string, error) {
	if item.ItemName == s.failFor {
		return "", errors.New("insert failed")
	}
	s.added = append(s.added, item)
	return "inv-" + item.ItemName, nil
}

func TestStorePantryItemsSkipsFailures(t *testing.T) {
	store := &stubPantryStore{failFor: "Milk"}
	b := &Bot{items: store, logger: zap.NewNop()}

	stored := b.storePantryItems(context.Background(), "u1", []inventory.Item{
		{ItemName: "Eggs", Quantity: 12, Unit: "unit", Category: "Dairy & Eggs"},
		{ItemName: "Milk", Quantity: 1, Unit: "l", Category: "Dairy & Eggs"},
		{ItemName: "Rice", Quantity: 2, Unit: "kg", Category: "Pantry"},
	})

	if len(stored) != 2 {
		t.Fatalf("stored = %d, want 2", len(stored))
	}
	if stored[0].ItemName != "Eggs" || stored[1].ItemName != "Rice" {
		t.Errorf("unexpected stored items: %+v", stored)
	}
	if len(store.added) != 2 {
		t.Errorf("repository received %d items, want 2", len(store.added))
	}
}

func TestFormatPantryReply(t *testing.T) {
	out := formatPantryReply([]inventory.Item{
		{ItemName: "Eggs", Quantity: 12, Unit: "unit", Category: "Dairy & Eggs"},
	})
	if !strings.Contains(out, "🧺 *Added to your pantry:*") {
		t.Error("missing reply header")
	}
	if !strings.Contains(out, "• Eggs — 12 unit (Dairy & Eggs)") {
		t.Errorf("missing item line: %q", out)
	}

	empty := formatPantryReply(nil)
	if !strings.Contains(empty, "didn't find any items") {
		t.Errorf("unexpected empty reply: %q", empty)
	}
}

func TestFormatUsageReport(t *testing.T) {
	usage := []metrics.DailyUsage{
		{Date: "2025-03-03", TotalPrompt: 1200, TotalCompletion: 300, TotalExecution: 4},
		{Date: "2025-03-02", TotalPrompt: 800, TotalCompletion: 200, TotalExecution: 2},
	}
	health := metrics.SysHealth{AllocMB: 12, SysMB: 40, Goroutines: 9, DatabaseSize: "1.2 MB"}

	out := formatUsageReport(usage, health)

	if !strings.Contains(out, "📊 *Usage & Health Report*") {
		t.Error("missing report header")
	}
	if !strings.Contains(out, "• *2025-03-03*: 1500 tokens (4 execs)") {
		t.Errorf("missing daily usage line: %q", out)
	}
	if !strings.Contains(out, "Goroutines: 9") {
		t.Error("missing goroutine count")
	}
	if !strings.Contains(out, "Database: 1.2 MB") {
		t.Error("missing database size")
	}
}

func TestFormatUsageReportEmpty(t *testing.T) {
	out := formatUsageReport(nil, metrics.SysHealth{})
	if !strings.Contains(out, "_No data yet_") {
		t.Errorf("expected empty-data marker: %q", out)
	}
}
