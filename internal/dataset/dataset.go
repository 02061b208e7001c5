// Package dataset holds the fixed source collection the directory is seeded
// with. The data is resident in the binary; there is no network or file load.
package dataset

import "svcmap/internal/model"

var seed = []model.ServiceRecord{
	{
		ID:           1,
		Name:         "Community Food Pantry",
		Organization: "Heartland Food Network",
		Address:      "2118 Olive Crossing, Maryland Heights, MO 63043",
		Description:  "Weekly groceries and emergency food boxes for households in the north county area.",
		Category:     "Food",
		SourceOrg:    "Heartland Food Network",
		Contact: model.Contact{
			Phone:   "(314) 555-0142",
			Email:   "intake@heartlandfood.example.org",
			Website: "https://heartlandfood.example.org",
		},
		Hours: map[string]string{
			"Monday":    "9:00 AM - 4:00 PM",
			"Wednesday": "9:00 AM - 4:00 PM",
			"Friday":    "9:00 AM - 1:00 PM",
		},
		Eligibility: "Open to residents of the 63043 and 63146 ZIP codes",
		Application: "Walk in during open hours with photo ID",
		Distance:    "2.1 miles",
		Coordinates: &model.LatLng{Lat: 38.7190, Lng: -90.4218},
	},
	{
		ID:           2,
		Name:         "Legal Aid Clinic",
		Organization: "Gateway Legal Services",
		Address:      "815 Chestnut St, St. Louis, MO 63101",
		Description:  "Free civil legal help with housing disputes, benefits denials, and family matters.",
		Category:     "Legal Aid",
		SourceOrg:    "Gateway Legal Services",
		Contact: model.Contact{
			Phone:   "(314) 555-0188",
			Website: "https://gatewaylegal.example.org",
		},
		Hours: map[string]string{
			"Tuesday":  "10:00 AM - 6:00 PM",
			"Thursday": "10:00 AM - 6:00 PM",
		},
		Eligibility: "Household income under 200% of the federal poverty line",
		Application: "Call for a phone screening before visiting",
		Distance:    "5.4 miles",
	},
	{
		ID:           3,
		Name:         "Mobile Market",
		Organization: "Heartland Food Network",
		Address:      "12750 Marine Ave, Creve Coeur, MO 63146",
		Description:  "Produce truck with sliding-scale prices, parked at a different site each weekday.",
		Category:     "Food",
		SourceOrg:    "Heartland Food Network",
		Contact: model.Contact{
			Phone: "(314) 555-0123",
		},
		Hours: map[string]string{
			"Monday": "11:00 AM - 2:00 PM",
			"Friday": "11:00 AM - 2:00 PM",
		},
		Eligibility: "No restrictions",
		Application: "No application needed",
		Distance:    "3.8 miles",
		Coordinates: &model.LatLng{Lat: 38.6620, Lng: -90.4218},
	},
	{
		ID:           4,
		Name:         "Transitional Housing Program",
		Organization: "Shelter Forward",
		Address:      "4011 Delmar Blvd, St. Louis, MO 63108",
		Description:  "Up to 24 months of supportive housing with case management for families.",
		Category:     "Housing",
		SourceOrg:    "Shelter Forward",
		Contact: model.Contact{
			Phone: "(314) 555-0170",
			Email: "housing@shelterforward.example.org",
		},
		Hours: map[string]string{
			"Monday":    "8:00 AM - 5:00 PM",
			"Tuesday":   "8:00 AM - 5:00 PM",
			"Wednesday": "8:00 AM - 5:00 PM",
			"Thursday":  "8:00 AM - 5:00 PM",
			"Friday":    "8:00 AM - 5:00 PM",
		},
		Eligibility: "Families with children experiencing homelessness",
		Application: "Referral through the regional coordinated entry line",
		Distance:    "6.9 miles",
		Coordinates: &model.LatLng{Lat: 38.6452, Lng: -90.2625},
	},
}

// Records returns a fresh copy of the seed collection, insertion order
// preserved, so callers can never mutate the canonical data.
func Records() []model.ServiceRecord {
	return model.CloneRecords(seed)
}
