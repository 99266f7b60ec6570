package poemdata

// SampleCatalog returns the embedded collections used when fetching
// from GitHub is disabled or fails. The data mirrors two digitized
// collections from norn-uio/norn-poems.
func SampleCatalog() Catalog {
	return Catalog{
		"2006081600051.xml": {
			Author:    "Mortensson-Egnund, Ivar",
			BookTitle: "Or duldo: draumkvæe",
			Year:      "1895",
			Poems: []string{
				"Maaneljos",
				"Uro",
				"Kven æ du?",
				"Dæ ropar eit maal",
				"Vaar",
				"Baanehender",
				"Ei go tiend",
				"Mannaord",
				"Livsens leik",
				"Høgt leite",
				"Uten titel",
				"Utferd",
				"Mannavyrdna",
				"Tirande glør",
				"Fivreld",
				"Ein liten ting",
				"Liv aa sæle",
				"Vitjing",
				"Got aa fagert",
				"Glitretindar",
				"Eg tenkte",
				"Fela",
				"Husk",
				"Kattejerd",
				"Eld aa vatn",
			},
		},
		"2006082400076.xml": {
			Author:    "Randers, Kristofer",
			BookTitle: "En Kjærlighedsvaar : Digt-Cyklus",
			Year:      "1894",
			Poems: []string{
				"Forord",
				"Tilegnelse til 1ste Udgave",
				"Tilegnelse til 2den Udgave",
				"Til Kjærligheden",
				"1",
				"2",
				"3",
				"4",
				"5",
				"6",
				"7",
				"Aftenhvisken",
				"Tonerne",
				"I krydsilden",
				"Rosen og Tistlen",
				"Bellas Hjerte",
				"Visitten i Helvede",
				"Amors Besøg",
				"Alvorsord",
				"Tømmermænd",
				"Drømmen",
				"Pandora",
				"Stille Lykke",
				"Kjærlighedssang",
				"Min Skat",
				"Digtersorg",
			},
		},
	}
}
