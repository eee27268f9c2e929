package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"marketplace/internal/models"
	"marketplace/internal/service"

	_ "github.com/lib/pq"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(connStr string) (*PostgresRepo, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS listings (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		price NUMERIC(12,2) NOT NULL,
		category TEXT NOT NULL,
		seller_email TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS messages (
		id SERIAL PRIMARY KEY,
		listing_id INTEGER NOT NULL REFERENCES listings(id),
		buyer_email TEXT NOT NULL,
		seller_email TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);
	`
	if _, err = db.Exec(createTableQuery); err != nil {
		return nil, fmt.Errorf("failed to ensure tables exist: %w", err)
	}
	return &PostgresRepo{db: db}, nil
}

var _ service.ListingRepository = (*PostgresRepo)(nil)
var _ service.MessageRepository = (*PostgresRepo)(nil)

func (r *PostgresRepo) ListListings() ([]models.Listing, error) {
	query := `SELECT id, title, description, price, category, seller_email, image_url, location, created_at, updated_at
	          FROM listings
	          ORDER BY created_at DESC;`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.Listing
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.Price, &l.Category,
			&l.SellerEmail, &l.ImageURL, &l.Location, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, l)
	}
	return results, rows.Err()
}

func (r *PostgresRepo) GetListing(id int) (models.Listing, error) {
	query := `SELECT id, title, description, price, category, seller_email, image_url, location, created_at, updated_at
	          FROM listings
	          WHERE id = $1;`
	var l models.Listing
	err := r.db.QueryRow(query, id).Scan(&l.ID, &l.Title, &l.Description, &l.Price,
		&l.Category, &l.SellerEmail, &l.ImageURL, &l.Location, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Listing{}, service.ErrListingNotFound
	}
	if err != nil {
		return models.Listing{}, err
	}
	return l, nil
}

func (r *PostgresRepo) InsertListing(l models.Listing) (models.Listing, error) {
	query := `INSERT INTO listings (title, description, price, category, seller_email, image_url, location)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at, updated_at;`
	err := r.db.QueryRow(query, l.Title, l.Description, l.Price, l.Category,
		l.SellerEmail, l.ImageURL, l.Location).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return models.Listing{}, err
	}
	return l, nil
}

func (r *PostgresRepo) ListMessages(listingID int) ([]models.Message, error) {
	query := `SELECT id, listing_id, buyer_email, seller_email, message, created_at
	          FROM messages
	          WHERE listing_id = $1
	          ORDER BY created_at ASC;`
	rows, err := r.db.Query(query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ListingID, &m.BuyerEmail, &m.SellerEmail,
			&m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

func (r *PostgresRepo) InsertMessage(m models.Message) (models.Message, error) {
	query := `INSERT INTO messages (listing_id, buyer_email, seller_email, message)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at;`
	err := r.db.QueryRow(query, m.ListingID, m.BuyerEmail, m.SellerEmail, m.Body).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return models.Message{}, err
	}
	return m, nil
}
