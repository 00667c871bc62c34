package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

type Vessel struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	LppM         float64 `json:"lpp_m"`
	BeamM        float64 `json:"beam_m"`
	DesignDraftM float64 `json:"design_draft_m"`
}

// StoredTable is a persisted hydrostatic result set. Rows holds the
// serialized sample rows; listings omit it.
type StoredTable struct {
	ID        int             `json:"id"`
	VesselID  int             `json:"vessel_id"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"created_at"`
	Rows      json.RawMessage `json:"rows,omitempty"`
}

type UserRepository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
}

// VesselRepository scopes every query by owner so one user cannot read or
// modify another user's vessels.
type VesselRepository interface {
	CreateVessel(ctx context.Context, ownerID int, v Vessel) (int, error)
	GetVessel(ctx context.Context, ownerID, id int) (Vessel, error)
	ListVessels(ctx context.Context, ownerID int) ([]Vessel, error)
	UpdateVessel(ctx context.Context, ownerID int, v Vessel) error
	DeleteVessel(ctx context.Context, ownerID, id int) error

	SaveGeometry(ctx context.Context, ownerID, vesselID int, hull []byte) error
	GetGeometry(ctx context.Context, ownerID, vesselID int) ([]byte, error)

	SaveTable(ctx context.Context, ownerID, vesselID int, name string, rows []byte) (int, error)
	ListTables(ctx context.Context, ownerID, vesselID int) ([]StoredTable, error)
	GetTable(ctx context.Context, ownerID, vesselID, tableID int) (StoredTable, error)
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

type PostgresVesselRepository struct {
	db *sql.DB
}

func NewPostgresVesselDB(db *sql.DB) *PostgresVesselRepository {
	return &PostgresVesselRepository{db: db}
}

func (r *PostgresVesselRepository) CreateVessel(ctx context.Context, ownerID int, v Vessel) (int, error) {
	var id int
	query := `INSERT INTO vessels (owner_id, name, lpp_m, beam_m, design_draft_m)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, ownerID, v.Name, v.LppM, v.BeamM, v.DesignDraftM).Scan(&id)
	return id, err
}

func (r *PostgresVesselRepository) GetVessel(ctx context.Context, ownerID, id int) (Vessel, error) {
	var v Vessel
	query := `SELECT id, name, lpp_m, beam_m, design_draft_m FROM vessels
		WHERE id=$1 AND owner_id=$2`
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&v.ID, &v.Name, &v.LppM, &v.BeamM, &v.DesignDraftM)
	return v, err
}

func (r *PostgresVesselRepository) ListVessels(ctx context.Context, ownerID int) ([]Vessel, error) {
	query := `SELECT id, name, lpp_m, beam_m, design_draft_m FROM vessels
		WHERE owner_id=$1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vessel
	for rows.Next() {
		var v Vessel
		if err := rows.Scan(&v.ID, &v.Name, &v.LppM, &v.BeamM, &v.DesignDraftM); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PostgresVesselRepository) UpdateVessel(ctx context.Context, ownerID int, v Vessel) error {
	query := `UPDATE vessels SET name=$3, lpp_m=$4, beam_m=$5, design_draft_m=$6
		WHERE id=$1 AND owner_id=$2`
	res, err := r.db.ExecContext(ctx, query, v.ID, ownerID, v.Name, v.LppM, v.BeamM, v.DesignDraftM)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *PostgresVesselRepository) DeleteVessel(ctx context.Context, ownerID, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM vessels WHERE id=$1 AND owner_id=$2", id, ownerID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *PostgresVesselRepository) SaveGeometry(ctx context.Context, ownerID, vesselID int, hull []byte) error {
	query := `UPDATE vessels SET geometry=$3 WHERE id=$1 AND owner_id=$2`
	res, err := r.db.ExecContext(ctx, query, vesselID, ownerID, hull)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *PostgresVesselRepository) GetGeometry(ctx context.Context, ownerID, vesselID int) ([]byte, error) {
	var hull []byte
	query := `SELECT geometry FROM vessels WHERE id=$1 AND owner_id=$2`
	err := r.db.QueryRowContext(ctx, query, vesselID, ownerID).Scan(&hull)
	return hull, err
}

func (r *PostgresVesselRepository) SaveTable(ctx context.Context, ownerID, vesselID int, name string, tableRows []byte) (int, error) {
	var id int
	query := `INSERT INTO hydro_tables (vessel_id, name, created_at, rows)
		SELECT v.id, $3, $4, $5 FROM vessels v WHERE v.id=$1 AND v.owner_id=$2
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, vesselID, ownerID, name, time.Now().UTC(), tableRows).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, sql.ErrNoRows
	}
	return id, err
}

func (r *PostgresVesselRepository) ListTables(ctx context.Context, ownerID, vesselID int) ([]StoredTable, error) {
	query := `SELECT t.id, t.vessel_id, t.name, t.created_at FROM hydro_tables t
		JOIN vessels v ON v.id = t.vessel_id
		WHERE t.vessel_id=$1 AND v.owner_id=$2 ORDER BY t.id`
	rows, err := r.db.QueryContext(ctx, query, vesselID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredTable
	for rows.Next() {
		var t StoredTable
		if err := rows.Scan(&t.ID, &t.VesselID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresVesselRepository) GetTable(ctx context.Context, ownerID, vesselID, tableID int) (StoredTable, error) {
	var t StoredTable
	query := `SELECT t.id, t.vessel_id, t.name, t.created_at, t.rows FROM hydro_tables t
		JOIN vessels v ON v.id = t.vessel_id
		WHERE t.id=$1 AND t.vessel_id=$2 AND v.owner_id=$3`
	err := r.db.QueryRowContext(ctx, query, tableID, vesselID, ownerID).
		Scan(&t.ID, &t.VesselID, &t.Name, &t.CreatedAt, &t.Rows)
	return t, err
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
