package services

import (
	"sort"

	"github.com/jbrukh/bayesian"
)

// Seed corpus used when no trained model file is configured. Labels are
// uppercase API values; the phrases are merchant names and wordings that
// show up in French bank statement titles.
var seedCorpus = map[string][]string{
	"ENERGY": {
		"edf facture electricite", "engie gaz", "totalenergies electricite",
		"eni energie", "ilek", "sowee", "veolia eau", "suez eau facture",
	},
	"INTERNET": {
		"orange internet fibre", "sfr box", "bouygues telecom bbox",
		"free telecom abonnement", "prelevement free haut debit",
	},
	"MOBILE": {
		"sosh mobile", "red by sfr forfait", "free mobile forfait",
		"bouygues telecom mobile",
	},
	"INSURANCE": {
		"axa assurance", "allianz cotisation", "macif assurance auto",
		"maif assurance habitation", "matmut", "groupama", "maaf", "alan mutuelle",
	},
	"BANK": {
		"boursorama banque", "boursobank frais", "revolut", "n26 abonnement",
		"bnp paribas frais bancaires", "societe generale cotisation",
		"credit agricole frais", "lcl cotisation carte",
	},
	"LEISURE": {
		"netflix abonnement", "spotify premium", "deezer", "apple services",
		"disney plus", "prime video", "basic fit", "fitness park",
		"cinema pathe gaumont",
	},
	"FOOD": {
		"leclerc courses", "carrefour market", "auchan supermarche",
		"intermarche", "lidl courses", "aldi marche", "monoprix", "franprix",
		"uber eats commande", "boulangerie", "restaurant",
	},
	"TRANSPORT": {
		"sncf billet train", "ratp navigo", "uber trajet", "bolt course",
		"total access station", "shell carburant", "vinci autoroutes peage",
	},
	"HEALTH": {
		"pharmacie", "laboratoire analyses", "cabinet medical",
		"docteur consultation", "ameli cpam remboursement",
	},
	"RENT": {
		"loyer appartement", "virement loyer", "agence immobiliere loyer",
		"charges copropriete",
	},
	"SALARY": {
		"virement salaire", "salaire net", "remuneration employeur",
	},
	"OTHER": {
		"divers", "retrait distributeur", "cheque emis",
	},
}

// TrainSeedModel builds a tf-idf naive-Bayes classifier from the seed
// corpus. Classes are fed in sorted order so two processes trained from
// the same corpus classify identically.
func TrainSeedModel() Classifier {
	names := make([]string, 0, len(seedCorpus))
	for name := range seedCorpus {
		names = append(names, name)
	}
	sort.Strings(names)

	classes := make([]bayesian.Class, 0, len(names))
	for _, name := range names {
		classes = append(classes, bayesian.Class(name))
	}

	cl := bayesian.NewClassifierTfIdf(classes...)
	for _, name := range names {
		for _, phrase := range seedCorpus[name] {
			cl.Learn(tokenize(phrase), bayesian.Class(name))
		}
	}
	cl.ConvertTermsFreqToTfIdf()

	return &bayesModel{classes: classes, cl: cl}
}
