package prompt

import (
	"testing"
)

func newTestSelect(options []string) selectModel {
	m := selectModel{
		prompt:   "Pick one",
		options:  options,
		selected: -1,
	}
	m.applyFilter()
	return m
}

func TestSelectModel_EnterSelectsCursor(t *testing.T) {
	t.Parallel()

	m := newTestSelect([]string{"work", "personal", "oss"})
	updated, _ := m.Update(keyPress("down"))
	updated, _ = updated.(selectModel).Update(keyPress("enter"))
	um := updated.(selectModel)

	if !um.done {
		t.Error("enter should finish the prompt")
	}
	if um.selected != 1 {
		t.Errorf("selected = %d, want 1", um.selected)
	}
}

func TestSelectModel_FilterNarrowsOptions(t *testing.T) {
	t.Parallel()

	m := newTestSelect([]string{"work", "personal", "oss"})
	updated, _ := m.Update(keyPress("p"))
	um := updated.(selectModel)

	if len(um.filtered) != 1 {
		t.Fatalf("filtered = %d entries, want 1", len(um.filtered))
	}
	if um.filtered[0].Index != 1 {
		t.Errorf("filtered[0].Index = %d, want 1", um.filtered[0].Index)
	}

	updated, _ = um.Update(keyPress("enter"))
	um = updated.(selectModel)
	if um.selected != 1 {
		t.Errorf("selected = %d, want 1", um.selected)
	}
}

func TestSelectModel_BackspaceRestoresOptions(t *testing.T) {
	t.Parallel()

	m := newTestSelect([]string{"work", "personal"})
	updated, _ := m.Update(keyPress("w"))
	updated, _ = updated.(selectModel).Update(keyPress("backspace"))
	um := updated.(selectModel)

	if len(um.filtered) != 2 {
		t.Errorf("filtered = %d entries, want 2", len(um.filtered))
	}
	if um.filter != "" {
		t.Errorf("filter = %q, want empty", um.filter)
	}
}

func TestSelectModel_EscCancels(t *testing.T) {
	t.Parallel()

	m := newTestSelect([]string{"work"})
	updated, _ := m.Update(keyPress("esc"))
	um := updated.(selectModel)

	if !um.cancelled {
		t.Error("esc should cancel")
	}
	if um.selected != -1 {
		t.Errorf("selected = %d, want -1", um.selected)
	}
}

func TestSelect_EmptyOptions(t *testing.T) {
	t.Parallel()

	res, err := Select("Pick one", nil)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if !res.Cancelled {
		t.Error("empty options should return a cancelled result")
	}
}
