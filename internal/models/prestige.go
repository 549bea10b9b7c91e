package models

// PrestigeResult reports one prestige attempt. A below-threshold attempt is
// not an error, it comes back with Success false and a reason.
type PrestigeResult struct {
	Success        bool            `json:"success"`
	Reason         string          `json:"reason,omitempty"`
	OldPrestige    int             `json:"old_prestige"`
	NewPrestige    int             `json:"new_prestige"`
	PrestigeXPGain int64           `json:"prestige_xp_gain"`
	NewXP          int64           `json:"new_xp"`
	NewLevel       int             `json:"new_level"`
	MoneyBonus     int64           `json:"money_bonus"`
	SpecialRewards []string        `json:"special_rewards"`
	Bonuses        PrestigeBonuses `json:"bonuses"`
}

// PrestigeBonuses is the derived view of what a prestige tier grants. The
// multipliers are display values, the award path does not consume them.
type PrestigeBonuses struct {
	XPMultiplier    float64  `json:"xp_multiplier"`
	MoneyMultiplier float64  `json:"money_multiplier"`
	MaxLevel        int      `json:"max_level"`
	SpecialRewards  []string `json:"special_rewards"`
}
