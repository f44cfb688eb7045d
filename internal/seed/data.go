package seed

import "github.com/marcheplus/marcheplus-backend/pkg/enums"

type categorySeed struct {
	name      string
	icon      string
	audio     string
	sortOrder int
}

type userSeed struct {
	name         string
	phone        string
	email        string
	role         enums.Role
	businessName string
	location     string
}

type productSeed struct {
	name        string
	description string
	price       int64
	unit        string
	category    string
	supplier    int
}

type summarySeed struct {
	category string
	text     string
}

var demoCategories = []categorySeed{
	{"Fruits", "🍊", "Fruits frais", 1},
	{"Légumes", "🥬", "Légumes frais", 2},
	{"Céréales", "🌾", "Céréales et grains", 3},
	{"Tubercules", "🥔", "Tubercules", 4},
	{"Huiles", "🫒", "Huiles alimentaires", 5},
	{"Épices", "🌶️", "Épices et condiments", 6},
	{"Poissons", "🐟", "Poissons et fruits de mer", 7},
	{"Viandes", "🥩", "Viandes", 8},
}

var demoUsers = []userSeed{
	{"Aminata Koné", "+2250701000001", "aminata@demo.ci", enums.RoleMerchant, "Marché Adjamé", "Adjamé, Abidjan"},
	{"Fatou Diallo", "+2250701000002", "fatou@demo.ci", enums.RoleMerchant, "Boutique Fatou", "Cocody, Abidjan"},
	{"Ibrahim Traoré", "+2250701000003", "ibrahim@demo.ci", enums.RoleSupplier, "Agri-Fresh CI", "Bouaké"},
	{"Kouadio Jean", "+2250701000004", "kouadio@demo.ci", enums.RoleSupplier, "Ferme du Sud", "San Pedro"},
	{"Mariame Coulibaly", "+2250701000005", "mariame@demo.ci", enums.RoleSupplier, "Épices Sahel", "Korhogo"},
	{"Admin Marché+", "+2250700000000", "admin@marche-plus.ci", enums.RoleAdmin, "Marché+ Admin", "Abidjan"},
}

// supplier indexes into the supplier subset of demoUsers, in declaration order.
var demoProducts = []productSeed{
	{"Banane Plantain", "Banane plantain mûre de qualité supérieure", 500, "kg", "Fruits", 0},
	{"Mangue Kent", "Mangue Kent sucrée et juteuse", 750, "kg", "Fruits", 0},
	{"Ananas Pain de Sucre", "Ananas frais cultivé localement", 1000, "pièce", "Fruits", 0},
	{"Tomate Fraîche", "Tomate fraîche rouge et ferme", 400, "kg", "Légumes", 1},
	{"Oignon Rouge", "Oignon rouge de qualité", 350, "kg", "Légumes", 1},
	{"Piment Frais", "Piment frais très piquant", 600, "kg", "Légumes", 1},
	{"Aubergine", "Aubergine locale fraîche", 300, "kg", "Légumes", 0},
	{"Riz Parfumé", "Riz long grain parfumé premium", 850, "kg", "Céréales", 0},
	{"Maïs Sec", "Maïs sec pour farine ou grillé", 450, "kg", "Céréales", 1},
	{"Igname Blanche", "Igname blanche de première qualité", 600, "kg", "Tubercules", 0},
	{"Manioc Frais", "Manioc frais pour attiéké ou foutou", 250, "kg", "Tubercules", 1},
	{"Patate Douce", "Patate douce orange sucrée", 400, "kg", "Tubercules", 0},
	{"Huile de Palme", "Huile de palme rouge artisanale", 1200, "litre", "Huiles", 1},
	{"Huile d'Arachide", "Huile d'arachide pure pressée à froid", 1500, "litre", "Huiles", 0},
	{"Poivre Noir", "Poivre noir moulu du terroir", 2000, "kg", "Épices", 2},
	{"Gingembre Frais", "Gingembre frais pour cuisine et jus", 800, "kg", "Épices", 2},
	{"Soumbala", "Soumbala traditionnel fermenté", 1500, "kg", "Épices", 2},
	{"Tilapia Frais", "Tilapia frais pêché du jour", 2500, "kg", "Poissons", 1},
	{"Maquereau Fumé", "Maquereau fumé traditionnel", 3000, "kg", "Poissons", 1},
	{"Poulet Local", "Poulet fermier élevé en plein air", 3500, "pièce", "Viandes", 0},
}

var demoSummaries = []summarySeed{
	{"Fruits", "Les prix des fruits sont stables cette semaine. La banane plantain reste à 500 francs le kilo. La mangue Kent est en baisse à 750 francs. C'est le bon moment pour acheter des mangues."},
	{"Légumes", "Les légumes sont en hausse légère. La tomate est passée de 350 à 400 francs. L'oignon rouge reste stable à 350 francs le kilo."},
	{"", "Résumé général du marché: Les prix sont globalement stables cette semaine. Les fruits sont en légère baisse, bonne opportunité d'achat. Les épices restent stables. Le poisson frais est en hausse saisonnière."},
}
