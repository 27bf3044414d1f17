package repository

const (
	dropVenuesTable   = `DROP TABLE IF EXISTS venues`
	createVenuesTable = `
		CREATE TABLE venues (
			code TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			location TEXT NOT NULL,
			region TEXT NOT NULL,
			water_type TEXT NOT NULL
		)
	`
	selectVenues = `
		SELECT code, name, location, region, water_type
		FROM venues
		ORDER BY CAST(code AS INTEGER)
	`
)
