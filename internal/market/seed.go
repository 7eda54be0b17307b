package market

import (
	"time"

	"github.com/google/uuid"
)

func cents(v int64) *int64 { return &v }

// Seed loads the demo catalogue into the store: three donor donations and
// two farmer products, all available. Deadlines are offsets from now so the
// time-remaining badges have something to count down.
func Seed(store *Store, now time.Time) {
	seeds := []Listing{
		{
			Title:        "3 plats de Piron",
			Description:  "Surplus de diner",
			Category:     "#Pâtisseries",
			Quantity:     "3 kg",
			ImageRef:     "eba.jpeg",
			Kind:         KindDonation,
			Owner:        Party{Name: "Boulangerie Martin", Role: RoleDonor, Verified: true, OrgType: "Restaurant"},
			Location:     Location{Address: "123 Rue de la République, 75001 Paris", Distance: "380m"},
			Deadline:     now.Add(30 * time.Minute),
			Instructions: "Entrée par la porte de service à l'arrière du magasin.",
		},
		{
			Title:        "Plats Préparés",
			Description:  "15 portions de lasagnes",
			Category:     "#PlatsCuisinés",
			Quantity:     "5 kg",
			ImageRef:     "riz.jpeg",
			Kind:         KindDonation,
			Owner:        Party{Name: "Restaurant La Table", Role: RoleDonor, Verified: true, OrgType: "Restaurant"},
			Location:     Location{Address: "45 Avenue Montaigne, 75008 Paris", Distance: "450m"},
			Deadline:     now.Add(90 * time.Minute),
			Instructions: "Demander le responsable à l'accueil.",
		},
		{
			Title:       "Riz",
			Description: "10 kg de fruits de saison",
			Category:    "#RepasChaud",
			Quantity:    "10 kg",
			ImageRef:    "ah.jpeg",
			Kind:        KindDonation,
			Owner:       Party{Name: "Marché Bio", Role: RoleDonor, Verified: true, OrgType: "Entreprise"},
			Location:    Location{Address: "78 Boulevard Haussmann, 75009 Paris", Distance: "290m"},
			Deadline:    now.Add(120 * time.Minute),
		},
		{
			Title:       "Tomates Bio Fraîches",
			Description: "Surplus de récolte de tomates bio",
			Category:    "#FruitsEtLégumes",
			Quantity:    "25 kg",
			ImageRef:    "3432.jpg",
			Kind:        KindProduct,
			PriceCents:  cents(1250),
			Owner:       Party{Name: "Ferme Dupont", Role: RoleFarmer, Verified: true, OrgType: "Agriculteur"},
			Location:    Location{Address: "12 Chemin des Champs, 75018 Paris", Distance: "0 m"},
			Deadline:    now.Add(3 * time.Hour),
		},
		{
			Title:       "Pommes de Terre",
			Description: "Invendus de la semaine",
			Category:    "#FruitsEtLégumes",
			Quantity:    "40 kg",
			ImageRef:    "potatoes.jpg",
			Kind:        KindProduct,
			PriceCents:  cents(800),
			Owner:       Party{Name: "Ferme Martin", Role: RoleFarmer, Verified: true, OrgType: "Agriculteur"},
			Location:    Location{Address: "34 Route du Village, 75019 Paris", Distance: "0 m"},
			Deadline:    now.Add(5 * time.Hour),
		},
	}
	for _, l := range seeds {
		l.ID = uuid.NewString()
		l.Status = StatusAvailable
		l.CreatedAt = now
		store.Upsert(l)
	}
}
