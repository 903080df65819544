package game

import "testing"

func newTestRuleset(t *testing.T, values map[string]string) (*Ruleset, *CvarManager) {
	t.Helper()
	cm, err := NewCvarManager(nil)
	if err != nil {
		t.Fatalf("NewCvarManager(nil) error: %v", err)
	}
	rs := NewRuleset(cm)
	for name, value := range values {
		cm.ForceSet(name, value)
	}
	return rs, cm
}

func TestRulesetPreInit(t *testing.T) {
	tests := []struct {
		name          string
		values        map[string]string
		wantCorrected bool
	}{
		{"未开启部落模式不修正", map[string]string{CvarCoop: "1"}, false},
		{"部落+死亡竞赛无需修正", map[string]string{CvarHorde: "1", CvarDeathmatch: "1"}, false},
		{"部落但未开死亡竞赛", map[string]string{CvarHorde: "1"}, true},
		{"部落+合作", map[string]string{CvarHorde: "1", CvarDeathmatch: "1", CvarCoop: "1"}, true},
		{"部落+夺旗", map[string]string{CvarHorde: "1", CvarDeathmatch: "1", CvarCTF: "1"}, true},
		{"部落+团队", map[string]string{CvarHorde: "1", CvarDeathmatch: "1", CvarTeamplay: "1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, cm := newTestRuleset(t, tt.values)

			if got := rs.PreInit(); got != tt.wantCorrected {
				t.Fatalf("PreInit: expected corrected=%v, got %v", tt.wantCorrected, got)
			}
			if !tt.wantCorrected {
				return
			}

			expected := map[string]string{
				CvarDeathmatch: "1",
				CvarCTF:        "0",
				CvarTeamplay:   "0",
				CvarCoop:       "0",
			}
			for name, want := range expected {
				cvar, ok := cm.Find(name)
				if !ok {
					t.Fatalf("cvar %s not registered", name)
				}
				if cvar.Value != want {
					t.Errorf("%s after PreInit: expected %s, got %s", name, want, cvar.Value)
				}
			}
		})
	}
}

func TestRulesetPredicates(t *testing.T) {
	tests := []struct {
		name            string
		values          map[string]string
		wantDeathmatch  bool
		wantCooperative bool
		wantHorde       bool
	}{
		{"单人", map[string]string{}, false, false, false},
		{"死亡竞赛", map[string]string{CvarDeathmatch: "1"}, true, false, false},
		{"合作", map[string]string{CvarCoop: "1"}, false, true, false},
		{"部落", map[string]string{CvarHorde: "1", CvarDeathmatch: "1"}, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, _ := newTestRuleset(t, tt.values)

			if got := rs.IsDeathmatch(); got != tt.wantDeathmatch {
				t.Errorf("IsDeathmatch: expected %v, got %v", tt.wantDeathmatch, got)
			}
			if got := rs.IsCooperative(); got != tt.wantCooperative {
				t.Errorf("IsCooperative: expected %v, got %v", tt.wantCooperative, got)
			}
			if got := rs.HordeEnabled(); got != tt.wantHorde {
				t.Errorf("HordeEnabled: expected %v, got %v", tt.wantHorde, got)
			}
		})
	}
}

func TestRulesetLatchedHorde(t *testing.T) {
	rs, cm := newTestRuleset(t, nil)

	cm.Set(CvarHorde, "1")
	if rs.HordeEnabled() {
		t.Error("Latched horde change should not apply before ApplyLatched")
	}

	cm.ApplyLatched()
	if !rs.HordeEnabled() {
		t.Error("Horde should be enabled after ApplyLatched")
	}
}
