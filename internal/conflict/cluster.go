// Package conflict derives identity clusters and aggregate risk signals from a
// roster snapshot. Every function here is pure: same snapshot in, same output
// out, with no hidden state. None of them can fail on well-formed input —
// records lacking an identity anchor are simply not groupable.
package conflict

import (
	"voteguard/internal/roll"
)

// Cluster is a group of non-archived records sharing one identity anchor.
// Only groups of two or more members constitute a conflict.
type Cluster struct {
	AnchorHash string       `json:"anchorHash"`
	Members    []roll.Voter `json:"members"`
}

// Clusters groups non-archived records by Aadhaar anchor and returns the
// conflict clusters (size ≥ 2). Cluster order follows the first appearance of
// each anchor in the snapshot; member order follows the snapshot itself.
func Clusters(voters []roll.Voter) []Cluster {
	groups := make(map[string][]roll.Voter)
	var order []string

	for _, v := range voters {
		if v.IsArchived {
			continue
		}
		anchor, ok := v.IdentityAnchor()
		if !ok {
			continue
		}
		if _, seen := groups[anchor]; !seen {
			order = append(order, anchor)
		}
		groups[anchor] = append(groups[anchor], v)
	}

	var out []Cluster
	for _, anchor := range order {
		members := groups[anchor]
		if len(members) < 2 {
			continue
		}
		out = append(out, Cluster{AnchorHash: anchor, Members: members})
	}
	return out
}

// ConflictsFor returns all other non-archived records sharing the given
// record's identity anchor, in snapshot order. Empty when the record has no
// anchor or no sibling shares it; the record itself is never included.
func ConflictsFor(voters []roll.Voter, id string) []roll.Voter {
	var target *roll.Voter
	for i := range voters {
		if voters[i].ID == id {
			target = &voters[i]
			break
		}
	}
	if target == nil {
		return nil
	}
	anchor, ok := target.IdentityAnchor()
	if !ok {
		return nil
	}

	var out []roll.Voter
	for _, v := range voters {
		if v.ID == id || v.IsArchived {
			continue
		}
		other, ok := v.IdentityAnchor()
		if ok && other == anchor {
			out = append(out, v)
		}
	}
	return out
}

// RiskBucket partitions active records by risk score.
type RiskBucket string

const (
	BucketCritical RiskBucket = "Critical" // [80,100]
	BucketHigh     RiskBucket = "High"     // [60,80)
	BucketMedium   RiskBucket = "Medium"   // [30,60)
	BucketLow      RiskBucket = "Low"      // [0,30)
)

// BucketFor places a risk score. Boundaries are inclusive-low/exclusive-high
// except the top bucket, which is closed at 100.
func BucketFor(score int) RiskBucket {
	switch {
	case score >= 80:
		return BucketCritical
	case score >= 60:
		return BucketHigh
	case score >= 30:
		return BucketMedium
	default:
		return BucketLow
	}
}

// RiskBuckets counts non-archived records per bucket.
func RiskBuckets(voters []roll.Voter) map[RiskBucket]int {
	out := map[RiskBucket]int{
		BucketCritical: 0,
		BucketHigh:     0,
		BucketMedium:   0,
		BucketLow:      0,
	}
	for _, v := range voters {
		if v.IsArchived {
			continue
		}
		out[BucketFor(v.RiskScore)]++
	}
	return out
}

// Summary holds the dashboard counters derived from a snapshot.
type Summary struct {
	TotalActive         int `json:"totalActive"`
	Flagged             int `json:"flagged"`
	CriticalRisk        int `json:"criticalRisk"`
	PendingVerification int `json:"pendingVerification"`
	ConflictClusters    int `json:"conflictClusters"`
}

// Summarize computes the aggregate counters. CriticalRisk uses a strictly
// greater-than-80 predicate, which deliberately differs from the Critical
// bucket's closed lower bound of 80.
func Summarize(voters []roll.Voter) Summary {
	var s Summary
	anchors := make(map[string]int)

	for _, v := range voters {
		if v.IsArchived {
			continue
		}
		s.TotalActive++
		if v.IsFlagged {
			s.Flagged++
		}
		if v.RiskScore > 80 {
			s.CriticalRisk++
		}
		if v.Status == roll.StatusPending {
			s.PendingVerification++
		}
		if anchor, ok := v.IdentityAnchor(); ok {
			anchors[anchor]++
		}
	}
	for _, n := range anchors {
		if n >= 2 {
			s.ConflictClusters++
		}
	}
	return s
}
