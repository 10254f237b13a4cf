// Package roll holds the electoral-roll record model and its store contract.
// Records are seeded at process start and live for the process's duration; they
// are never deleted, only archived.
package roll

import "time"

// Status is the verification state of a record on the roll.
type Status string

const (
	StatusActive    Status = "Active"
	StatusShifted   Status = "Shifted"
	StatusDeceased  Status = "Deceased"
	StatusNotFound  Status = "Not Found"
	StatusPending   Status = "Pending Verification"
	StatusDuplicate Status = "Duplicate"
)

// ConsistencyStatus indicates how well the Aadhaar linkage agrees with the
// roll record.
type ConsistencyStatus string

const (
	ConsistencyConsistent   ConsistencyStatus = "CONSISTENT"
	ConsistencyPartial      ConsistencyStatus = "PARTIAL"
	ConsistencyInconsistent ConsistencyStatus = "INCONSISTENT"
)

// IDDocType is the secondary identity document category.
type IDDocType string

const (
	IDDocPassport       IDDocType = "Passport"
	IDDocPAN            IDDocType = "PAN"
	IDDocDrivingLicense IDDocType = "Driving License"
	IDDocNPR            IDDocType = "NPR"
)

// AadhaarMetadata is the primary identity proof. IDHash is the identity anchor
// used for duplicate clustering across jurisdictions.
type AadhaarMetadata struct {
	Initials        string            `json:"initials"`
	YearOfBirth     int               `json:"yob"`
	StateCode       string            `json:"stateCode"`
	LastUpdatedYear int               `json:"lastUpdatedYear"`
	SyncRevision    int               `json:"syncRevision"`
	Consistency     ConsistencyStatus `json:"consistencyStatus"`
	IDHash          string            `json:"aadhaarIdHash"`
}

// OtherIDMetadata is the optional secondary identity proof. It is not required
// when Aadhaar is linked.
type OtherIDMetadata struct {
	Type     IDDocType `json:"type"`
	IDNumber string    `json:"idNumber"`
	NameOnID string    `json:"nameOnId"`
	DOBOnID  string    `json:"dobOnId"`
}

// FlagHistory is one resolution event. Entries are append-only: committed
// events are never rewritten or reordered.
type FlagHistory struct {
	Timestamp     time.Time `json:"timestamp"`
	ResolvedBy    string    `json:"resolvedBy"`
	Resolution    string    `json:"resolution"`
	Remarks       string    `json:"remarks"`
	OriginalFlags []string  `json:"originalFlags"`
}

// Voter is a single electoral-roll record, keyed by EPIC number.
type Voter struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Age              int              `json:"age"`
	DOB              string           `json:"dob"`
	Address          string           `json:"address"`
	State            string           `json:"state"`
	Zone             string           `json:"zone"`
	District         string           `json:"district"`
	PollingStation   string           `json:"pollingStation"`
	LastVerifiedYear int              `json:"lastVerifiedYear"`
	RiskScore        int              `json:"riskScore"`
	Status           Status           `json:"status"`
	IsFlagged        bool             `json:"isFlagged"`
	FlaggedReasons   []string         `json:"flaggedReasons"`
	AadhaarMeta      *AadhaarMetadata `json:"aadhaarMeta,omitempty"`
	OtherIDMeta      *OtherIDMetadata `json:"otherIdMeta,omitempty"`
	IsArchived       bool             `json:"isArchived"`
	DuplicateOf      string           `json:"duplicateOf,omitempty"`
	FlaggedHistory   []FlagHistory    `json:"flaggedHistory,omitempty"`
}

// IdentityAnchor returns the Aadhaar anchor hash when the record has one.
// Records without an anchor are not groupable, which is a fact, not an error.
func (v Voter) IdentityAnchor() (string, bool) {
	if v.AadhaarMeta == nil || v.AadhaarMeta.IDHash == "" {
		return "", false
	}
	return v.AadhaarMeta.IDHash, true
}

// DocumentationViolation reports whether the record carries neither a primary
// nor a secondary identity proof. Aadhaar alone is sufficient; the secondary
// document alone is sufficient; only the neither case is a violation, at
// maximal severity regardless of risk score or flag state.
func (v Voter) DocumentationViolation() bool {
	switch {
	case v.AadhaarMeta != nil && v.OtherIDMeta != nil:
		return false
	case v.AadhaarMeta != nil:
		return false
	case v.OtherIDMeta != nil:
		return false
	default:
		return true
	}
}

// Clone returns a deep copy so holders of a returned record can never reach
// into store-owned slices or metadata.
func (v Voter) Clone() Voter {
	out := v
	if v.AadhaarMeta != nil {
		meta := *v.AadhaarMeta
		out.AadhaarMeta = &meta
	}
	if v.OtherIDMeta != nil {
		meta := *v.OtherIDMeta
		out.OtherIDMeta = &meta
	}
	if v.FlaggedReasons != nil {
		out.FlaggedReasons = append([]string{}, v.FlaggedReasons...)
	}
	if v.FlaggedHistory != nil {
		out.FlaggedHistory = make([]FlagHistory, len(v.FlaggedHistory))
		for i, h := range v.FlaggedHistory {
			out.FlaggedHistory[i] = h
			if h.OriginalFlags != nil {
				out.FlaggedHistory[i].OriginalFlags = append([]string{}, h.OriginalFlags...)
			}
		}
	}
	return out
}
