package qianbao

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func names(assets []Asset) []string {
	var r []string
	for _, a := range assets {
		r = append(r, a.Name)
	}
	return r
}

func TestStore_Scenario(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemSlot(), "", "CNY")
	if err := store.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if got := store.Total().String(); got != "¥0" {
		t.Errorf("empty total = %q, want ¥0", got)
	}

	cash, err := store.Add(ctx, draft(t, "Cash", "100", "💰"))
	if err != nil {
		t.Fatal(err)
	}
	if got := store.Total().String(); got != "¥100" {
		t.Errorf("total = %q, want ¥100", got)
	}

	if _, err := store.Add(ctx, draft(t, "Car", "50000", "🚗")); err != nil {
		t.Fatal(err)
	}
	if got := store.Total().String(); got != "¥50,100" {
		t.Errorf("total = %q, want ¥50,100", got)
	}

	f := EditForm(cash)
	f.Amount = "200"
	d, err := f.Validate()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Update(ctx, cash.ID, d); err != nil {
		t.Fatal(err)
	}
	if got := store.Total().String(); got != "¥50,200" {
		t.Errorf("total = %q, want ¥50,200", got)
	}
	if diff := cmp.Diff([]string{"Cash", "Car"}, names(store.Assets())); diff != "" {
		t.Errorf("assets order mismatch (-want +got):\n%s", diff)
	}
	if got, _ := store.Get(cash.ID); got.Icon.Preset() != "💰" {
		t.Errorf("edited icon = %q, want 💰", got.Icon.Preset())
	}
}

func TestStore_UpdateKeepsOthers(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemSlot(), "", "CNY")
	var ids []string
	for _, n := range []string{"A", "B", "C"} {
		a, err := store.Add(ctx, draft(t, n, "1", ""))
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, a.ID)
	}
	before := store.Assets()

	if _, err := store.Update(ctx, ids[1], draft(t, "B2", "42", "🏠")); err != nil {
		t.Fatal(err)
	}
	after := store.Assets()

	if len(after) != 3 {
		t.Fatalf("got %d assets, want 3", len(after))
	}
	for _, i := range []int{0, 2} {
		if diff := cmp.Diff(before[i], after[i], cmp.Comparer(func(a, b Asset) bool {
			return a.ID == b.ID && a.Name == b.Name && a.Amount.Equal(b.Amount) && a.Icon == b.Icon
		})); diff != "" {
			t.Errorf("asset #%d changed (-before +after):\n%s", i, diff)
		}
	}
	if after[1].ID != ids[1] || after[1].Name != "B2" || !after[1].Amount.Equal(decimal.NewFromInt(42)) {
		t.Errorf("asset #1 = %+v, want B2 42 with the same id", after[1])
	}
}

func TestStore_UpdateUnknown(t *testing.T) {
	store := NewStore(newMemSlot(), "", "CNY")
	_, err := store.Update(context.Background(), "nope", draft(t, "X", "1", ""))
	if !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("Update(unknown) error = %v, want ErrAssetNotFound", err)
	}
}

func TestStore_TotalIsSumOfAmounts(t *testing.T) {
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(7))
	store := NewStore(newMemSlot(), "", "CNY")

	for step := 0; step < 200; step++ {
		assets := store.Assets()
		amount := decimal.New(rnd.Int63n(2_000_000)-1_000_000, -int32(rnd.Intn(3)))
		d := Draft{Name: "asset", Amount: amount, Icon: DefaultIcon()}
		if len(assets) > 0 && rnd.Intn(2) == 0 {
			id := assets[rnd.Intn(len(assets))].ID
			if _, err := store.Update(ctx, id, d); err != nil {
				t.Fatal(err)
			}
		} else if _, err := store.Add(ctx, d); err != nil {
			t.Fatal(err)
		}

		sum := decimal.Zero
		for _, a := range store.Assets() {
			sum = sum.Add(a.Amount)
		}
		if total := store.Total(); !total.Decimal().Equal(sum) {
			t.Fatalf("step %d: total %v != sum %v", step, total.Decimal(), sum)
		}
	}
}

func TestStore_PersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	slot := newMemSlot()
	store := NewStore(slot, "", "CNY")
	a, err := store.Add(ctx, draft(t, "Cash", "100", ""))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Update(ctx, a.ID, draft(t, "Cash", "150", "")); err != nil {
		t.Fatal(err)
	}
	if slot.sets != 2 {
		t.Errorf("slot written %d times, want 2", slot.sets)
	}

	reloaded := NewStore(slot, "", "CNY")
	if err := reloaded.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if got := reloaded.Total().String(); got != "¥150" {
		t.Errorf("reloaded total = %q, want ¥150", got)
	}
}

func TestStore_FailedPersistIsUndone(t *testing.T) {
	ctx := context.Background()
	slot := newMemSlot()
	store := NewStore(slot, "", "CNY")
	a, err := store.Add(ctx, draft(t, "Cash", "100", ""))
	if err != nil {
		t.Fatal(err)
	}

	slot.fail = errDiskFull
	if _, err := store.Add(ctx, draft(t, "Car", "5", "")); !errors.Is(err, errDiskFull) {
		t.Errorf("Add error = %v, want %v", err, errDiskFull)
	}
	if _, err := store.Update(ctx, a.ID, draft(t, "Cash", "1", "")); !errors.Is(err, errDiskFull) {
		t.Errorf("Update error = %v, want %v", err, errDiskFull)
	}
	if got := names(store.Assets()); len(got) != 1 {
		t.Errorf("assets = %v, want only Cash", got)
	}
	if got := store.Total().String(); got != "¥100" {
		t.Errorf("total = %q, want ¥100", got)
	}
}

func TestStore_IDsAreDistinct(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemSlot(), "", "CNY")
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		a, err := store.Add(ctx, draft(t, "x", "1", ""))
		if err != nil {
			t.Fatal(err)
		}
		if seen[a.ID] {
			t.Fatalf("duplicate id %q", a.ID)
		}
		seen[a.ID] = true
	}
}

func TestBook_Append(t *testing.T) {
	b := NewBook()
	if err := b.Append(Asset{ID: "1", Name: "Cash"}); err != nil {
		t.Fatal(err)
	}
	if err := b.Append(Asset{ID: "1", Name: "Other"}); err == nil {
		t.Error("expected an error for a duplicate id")
	}
	if err := b.Append(Asset{ID: "2", Name: "  "}); err == nil {
		t.Error("expected an error for an empty name")
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
	var got []string
	for a := range b.All() {
		got = append(got, a.ID)
	}
	if diff := cmp.Diff([]string{"1"}, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_LargeAmounts(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemSlot(), "", "CNY")
	for _, name := range []string{"Gold", "Land"} {
		if _, err := store.Add(ctx, draft(t, name, "99999999999999999999", "")); err != nil {
			t.Fatal(err)
		}
	}

	assets, total := store.Snapshot()
	if len(assets) != 2 {
		t.Fatalf("Snapshot() returned %d assets, want 2", len(assets))
	}
	if want := "¥199,999,999,999,999,999,998"; total.String() != want {
		t.Errorf("total = %s, want %s", total, want)
	}
	if !total.Equal(store.Total()) {
		t.Errorf("Snapshot() total %v != Total() %v", total.Decimal(), store.Total().Decimal())
	}
	if want := "¥99,999,999,999,999,999,999"; assets[0].Money("CNY").String() != want {
		t.Errorf("amount = %s, want %s", assets[0].Money("CNY"), want)
	}
}
