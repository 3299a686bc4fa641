// Package priority scores queued mutations so the sync engine drains the
// most important field data first when connectivity windows are short.
package priority

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-field-sync/models"
)

const (
	maxScore    = 100
	urgentBonus = 20
	deleteBonus = 5

	ageStep     = 10 * time.Minute
	maxAgeBonus = 15
)

// base scores per entity type; unknown types get defaultBase
var baseScores = map[string]int{
	"assessment": 40,
	"incident":   35,
	"response":   30,
	"entity":     20,
}

const defaultBase = 15

var severityBonuses = map[string]int{
	"critical": 30,
	"high":     20,
	"medium":   10,
}

// Input carries everything the scoring rules look at. Now is injected so
// the age bonus is deterministic under test.
type Input struct {
	EntityType string
	Action     models.QueueAction
	Payload    map[string]any
	Urgent     bool
	CreatedAt  time.Time
	Now        time.Time
}

// Assign computes the priority of a queued mutation. The same Input always
// produces the same Priority; no state is read or written.
//
// Score components:
//   - base score by entity type;
//   - severity bonus when the payload carries a "severity" field;
//   - a small bump for deletions, which are cheap and unblock the server;
//   - age bonus of 1 point per 10 minutes in queue, capped;
//   - urgency bonus when the submitter flagged the item.
//
// The total is capped at 100 and mapped onto HIGH/NORMAL/LOW.
func Assign(in Input) models.Priority {
	var reasons []string

	base, ok := baseScores[in.EntityType]
	if !ok {
		base = defaultBase
	}
	score := base
	reasons = append(reasons, fmt.Sprintf("base(%s)=%d", in.EntityType, base))

	if severity, ok := in.Payload["severity"].(string); ok {
		if bonus, known := severityBonuses[strings.ToLower(severity)]; known {
			score += bonus
			reasons = append(reasons, fmt.Sprintf("severity(%s)=+%d", strings.ToLower(severity), bonus))
		}
	}

	if in.Action == models.ActionDelete {
		score += deleteBonus
		reasons = append(reasons, fmt.Sprintf("delete=+%d", deleteBonus))
	}

	if ageBonus := ageBonusFor(in.CreatedAt, in.Now); ageBonus > 0 {
		score += ageBonus
		reasons = append(reasons, fmt.Sprintf("age=+%d", ageBonus))
	}

	if in.Urgent {
		score += urgentBonus
		reasons = append(reasons, fmt.Sprintf("urgent=+%d", urgentBonus))
	}

	if score > maxScore {
		score = maxScore
	}

	return models.Priority{
		Score:  score,
		Level:  models.LevelForScore(score),
		Reason: strings.Join(reasons, ", "),
	}
}

func ageBonusFor(createdAt, now time.Time) int {
	if createdAt.IsZero() || !now.After(createdAt) {
		return 0
	}
	bonus := int(now.Sub(createdAt) / ageStep)
	if bonus > maxAgeBonus {
		bonus = maxAgeBonus
	}
	return bonus
}
