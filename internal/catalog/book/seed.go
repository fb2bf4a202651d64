// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

// DefaultCatalog is the starter catalog loaded by the in-memory store.
// data/migrations inserts the same rows for Postgres.
func DefaultCatalog() []*Book {
	return []*Book{
		{
			ID:            "bk-0001",
			Title:         "The Hobbit",
			Author:        "J. R. R. Tolkien",
			CoverImageURL: "https://covers.openlibrary.org/b/isbn/9780547928227-L.jpg",
			PageCount:     300,
			Publisher:     "Houghton Mifflin Harcourt",
			Synopsis:      "Bilbo Baggins is swept into a quest to reclaim a dwarven kingdom from a dragon.",
		},
		{
			ID:            "bk-0002",
			Title:         "Dune",
			Author:        "Frank Herbert",
			CoverImageURL: "https://covers.openlibrary.org/b/isbn/9780441172719-L.jpg",
			PageCount:     688,
			Publisher:     "Ace",
			Synopsis:      "A noble family takes stewardship of the desert planet Arrakis and its spice.",
		},
		{
			ID:            "bk-0003",
			Title:         "The Left Hand of Darkness",
			Author:        "Ursula K. Le Guin",
			CoverImageURL: "https://covers.openlibrary.org/b/isbn/9780441478125-L.jpg",
			PageCount:     304,
			Publisher:     "Ace",
			Synopsis:      "An envoy to the planet Gethen must navigate a society without fixed gender.",
		},
		{
			ID:            "bk-0004",
			Title:         "The Name of the Wind",
			Author:        "Patrick Rothfuss",
			CoverImageURL: "https://covers.openlibrary.org/b/isbn/9780756404741-L.jpg",
			PageCount:     662,
			Publisher:     "DAW Books",
			Synopsis:      "Kvothe recounts his path from travelling performer to legendary arcanist.",
		},
		{
			ID:            "bk-0005",
			Title:         "Kindred",
			Author:        "Octavia E. Butler",
			CoverImageURL: "https://covers.openlibrary.org/b/isbn/9780807083697-L.jpg",
			PageCount:     264,
			Publisher:     "Beacon Press",
			Synopsis:      "A modern woman is pulled back in time to an antebellum Maryland plantation.",
		},
	}
}
