package roll

import (
	"context"
	"fmt"
	"strings"
)

// Seed data mirrors the bootstrap feed of the reference deployment. Generation
// is deterministic so tests and restarts see the same roster.

var seedGeography = []struct {
	Zone   string
	States []string
}{
	{"South", []string{"Tamil Nadu", "Karnataka", "Kerala", "Telangana", "Andhra Pradesh"}},
	{"North", []string{"Delhi", "Punjab", "Haryana", "Himachal Pradesh", "Uttarakhand"}},
	{"West", []string{"Maharashtra", "Gujarat", "Rajasthan", "Goa"}},
	{"East", []string{"West Bengal", "Bihar", "Odisha", "Jharkhand"}},
	{"Central", []string{"Madhya Pradesh", "Chhattisgarh", "Uttar Pradesh"}},
}

var (
	seedFirstNames = []string{"Vijay", "Karthik", "Sanjay", "Arjun", "Rahul", "Amit", "Priya", "Sneha", "Meena", "Ananya", "Rohan", "Deepak", "Suresh", "Ramesh", "Laxmi", "Geeta", "Mohan", "Kavita", "Rajesh", "Sunita"}
	seedLastNames  = []string{"Kumar", "Nair", "Iyer", "Reddy", "Sharma", "Gupta", "Singh", "Patel", "Das", "Rao", "Varma", "Jadhav", "Pillai", "Goud", "Banerjee", "Chatterjee", "Kulkarni", "Deshmukh", "Tyagi", "Bose"}
	seedDocTypes   = []IDDocType{IDDocPassport, IDDocPAN, IDDocDrivingLicense, IDDocNPR}
)

// SeedRoster generates the deterministic bootstrap roster, including the
// cross-state identity clash pair used by duplicate-detection reviews.
func SeedRoster() []Voter {
	var voters []Voter
	count := 0

	for _, geo := range seedGeography {
		for _, state := range geo.States {
			for i := 0; i < 7; i++ {
				count++
				name := strings.ToUpper(seedFirstNames[count%len(seedFirstNames)] + " " + seedLastNames[count%len(seedLastNames)])
				yob := 1955 + (count % 50)

				flagged := count%12 == 5
				hasSecondary := count%5 != 2
				risk := (count * 3) % 20
				if flagged {
					risk = 50 + (count*7)%40
				}

				var reasons []string
				if flagged {
					reasons = append(reasons, "Minor metadata inconsistency detected")
				}
				status := StatusActive
				if risk > 75 {
					status = StatusPending
				}

				v := Voter{
					ID:               fmt.Sprintf("VOT-%d", 300000+count),
					Name:             name,
					Age:              2024 - yob,
					DOB:              fmt.Sprintf("%d-0%d-10", yob, (count%9)+1),
					Address:          fmt.Sprintf("Block %d, Sector %d, %s", i+1, count%15, state),
					State:            state,
					Zone:             geo.Zone,
					District:         fmt.Sprintf("%s District %d", state, count/10+1),
					PollingStation:   fmt.Sprintf("Booth-%d, %s High School", 200+i, state),
					LastVerifiedYear: 2018 + (count % 6),
					RiskScore:        risk,
					Status:           status,
					IsFlagged:        flagged,
					FlaggedReasons:   reasons,
					AadhaarMeta: &AadhaarMetadata{
						Initials:        initials(name),
						YearOfBirth:     yob,
						StateCode:       strings.ToUpper(state[:2]),
						LastUpdatedYear: 2021 + (count % 3),
						SyncRevision:    (count % 2) + 1,
						Consistency:     ConsistencyConsistent,
						IDHash:          fmt.Sprintf("HASH-%d", 2000+count),
					},
				}
				if hasSecondary {
					v.OtherIDMeta = &OtherIDMetadata{
						Type:     seedDocTypes[count%len(seedDocTypes)],
						IDNumber: fmt.Sprintf("SEC-%d", 90000+count),
						NameOnID: name,
						DOBOnID:  v.DOB,
					}
				}
				voters = append(voters, v)
			}
		}
	}

	voters = append(voters, clashPair()...)
	return voters
}

// clashPair is a multi-EPIC registration sharing one Aadhaar anchor across two
// states, the canonical conflict-cluster case.
func clashPair() []Voter {
	return []Voter{
		{
			ID:               "EPIC-DUP-X1",
			Name:             "RAJESH KHANNA",
			Age:              55,
			DOB:              "1969-05-12",
			Address:          "Plot 42, Civil Lines, Nagpur, Maharashtra",
			State:            "Maharashtra",
			Zone:             "West",
			District:         "Nagpur",
			PollingStation:   "PS-88, Nagpur Central",
			LastVerifiedYear: 2023,
			RiskScore:        99,
			Status:           StatusPending,
			IsFlagged:        true,
			FlaggedReasons:   []string{"Identity overlap detected"},
			AadhaarMeta: &AadhaarMetadata{
				Initials: "RK", YearOfBirth: 1969, StateCode: "MH",
				LastUpdatedYear: 2023, SyncRevision: 1,
				Consistency: ConsistencyConsistent, IDHash: "HID-RAJESH-CLASH",
			},
		},
		{
			ID:               "EPIC-DUP-X2",
			Name:             "RAJESH KHANNA",
			Age:              55,
			DOB:              "1969-05-12",
			Address:          "Sector 5, Dwarka, Delhi",
			State:            "Delhi",
			Zone:             "North",
			District:         "New Delhi",
			PollingStation:   "PS-12, Dwarka",
			LastVerifiedYear: 2022,
			RiskScore:        99,
			Status:           StatusPending,
			IsFlagged:        true,
			FlaggedReasons:   []string{"Identity overlap detected"},
			AadhaarMeta: &AadhaarMetadata{
				Initials: "RK", YearOfBirth: 1969, StateCode: "DL",
				LastUpdatedYear: 2023, SyncRevision: 1,
				Consistency: ConsistencyConsistent, IDHash: "HID-RAJESH-CLASH",
			},
			OtherIDMeta: &OtherIDMetadata{
				Type: IDDocPassport, IDNumber: "P-998877",
				NameOnID: "RAJESH KHANNA", DOBOnID: "1969-05-12",
			},
		},
	}
}

func initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		b.WriteByte(part[0])
	}
	return b.String()
}

// SeedStore loads the bootstrap roster into an empty store.
func SeedStore(ctx context.Context, store Store) error {
	for _, v := range SeedRoster() {
		if err := store.Insert(ctx, v); err != nil {
			return fmt.Errorf("seed %s: %w", v.ID, err)
		}
	}
	return nil
}
