package match

import "testing"

func TestTypeFromPlayerCount(t *testing.T) {
	tests := []struct {
		n    int
		want Type
		ok   bool
	}{
		{2, Type1v1, true},
		{4, Type2v2, true},
		{6, Type3v3, true},
		{8, Type4v4, true},
		{0, 0, false},
		{3, 0, false},
		{5, 0, false},
		{7, 0, false},
		{10, 0, false},
	}
	for _, tt := range tests {
		got, ok := TypeFromPlayerCount(tt.n)
		if got != tt.want || ok != tt.ok {
			t.Errorf("TypeFromPlayerCount(%d) = (%v, %v), want (%v, %v)",
				tt.n, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNew_SplitsTeams(t *testing.T) {
	m, err := New([]RosterEntry{
		{Slot: 0, Name: "Alice", ProfileID: 1, Team: 0, Faction: FactionWehrmacht},
		{Slot: 1, Name: "Bob", ProfileID: 2, Team: 1, Faction: FactionSoviet},
		{Slot: 2, Name: "Carol", ProfileID: 3, Team: 0, Faction: FactionOKW},
		{Slot: 3, Name: "Dave", ProfileID: 4, Team: 1, Faction: FactionBritish},
	})
	if err != nil {
		t.Fatal(err)
	}
	if m.Type != Type2v2 {
		t.Errorf("type = %v, want 2v2", m.Type)
	}
	if len(m.Teams[0]) != 2 || len(m.Teams[1]) != 2 {
		t.Errorf("team sizes = %d/%d, want 2/2", len(m.Teams[0]), len(m.Teams[1]))
	}
	if got := len(m.Players()); got != 4 {
		t.Errorf("players = %d, want 4", got)
	}
}

func TestNew_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		entries []RosterEntry
	}{
		{"empty", nil},
		{"single player", []RosterEntry{
			{Name: "Alice", ProfileID: 1, Team: 0, Faction: FactionWehrmacht},
		}},
		{"uneven teams", []RosterEntry{
			{Name: "Alice", ProfileID: 1, Team: 0, Faction: FactionWehrmacht},
			{Name: "Bob", ProfileID: 2, Team: 0, Faction: FactionOKW},
			{Name: "Carol", ProfileID: 3, Team: 0, Faction: FactionWehrmacht},
			{Name: "Dave", ProfileID: 4, Team: 1, Faction: FactionSoviet},
		}},
		{"ai player", []RosterEntry{
			{Name: "Alice", ProfileID: 1, Team: 0, Faction: FactionWehrmacht},
			{Name: "CPU", Team: 1, Faction: FactionSoviet, AI: true},
		}},
		{"invalid team", []RosterEntry{
			{Name: "Alice", ProfileID: 1, Team: 0, Faction: FactionWehrmacht},
			{Name: "Bob", ProfileID: 2, Team: 2, Faction: FactionSoviet},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.entries); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestComputeSignature_SetBased(t *testing.T) {
	a := []RosterEntry{
		{Name: "Alice", ProfileID: 1, Team: 0, Faction: FactionWehrmacht},
		{Name: "Bob", ProfileID: 2, Team: 1, Faction: FactionSoviet},
	}
	b := []RosterEntry{a[1], a[0]}

	if ComputeSignature(Type1v1, a) != ComputeSignature(Type1v1, b) {
		t.Error("signature depends on entry order")
	}
}

func TestComputeSignature_Distinguishes(t *testing.T) {
	base := []RosterEntry{
		{Name: "Alice", ProfileID: 1, Team: 0, Faction: FactionWehrmacht},
		{Name: "Bob", ProfileID: 2, Team: 1, Faction: FactionSoviet},
	}
	otherPlayer := []RosterEntry{
		base[0],
		{Name: "Mallory", ProfileID: 3, Team: 1, Faction: FactionSoviet},
	}

	if ComputeSignature(Type1v1, base) == ComputeSignature(Type1v1, otherPlayer) {
		t.Error("different players produced equal signatures")
	}
	if ComputeSignature(Type1v1, base) == ComputeSignature(Type2v2, base) {
		t.Error("different match types produced equal signatures")
	}
}

func TestComputeSignature_FallsBackToName(t *testing.T) {
	unnamed := []RosterEntry{
		{Name: "Alice", Team: 0, Faction: FactionWehrmacht},
		{Name: "Bob", Team: 1, Faction: FactionSoviet},
	}
	renamed := []RosterEntry{
		{Name: "Alice", Team: 0, Faction: FactionWehrmacht},
		{Name: "Eve", Team: 1, Faction: FactionSoviet},
	}
	if ComputeSignature(Type1v1, unnamed) == ComputeSignature(Type1v1, renamed) {
		t.Error("name change not reflected in signature when IDs are absent")
	}
}

func TestFactionFromLogKey(t *testing.T) {
	for _, f := range allFactions {
		got, ok := FactionFromLogKey(f.LogKey())
		if !ok || got != f {
			t.Errorf("FactionFromLogKey(%q) = (%v, %v), want (%v, true)", f.LogKey(), got, ok, f)
		}
	}
	if _, ok := FactionFromLogKey("martian"); ok {
		t.Error("unknown key accepted")
	}
}

func TestTeamFaction(t *testing.T) {
	tests := []struct {
		f    Faction
		want TeamFaction
	}{
		{FactionWehrmacht, TeamAxis},
		{FactionOKW, TeamAxis},
		{FactionSoviet, TeamAllies},
		{FactionUSForces, TeamAllies},
		{FactionBritish, TeamAllies},
	}
	for _, tt := range tests {
		if got := tt.f.TeamFaction(); got != tt.want {
			t.Errorf("%v.TeamFaction() = %v, want %v", tt.f, got, tt.want)
		}
	}
}
