package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"study-notes-backend/internal/domain"
	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/domain/ports/repository"
)

var _ repository.CatalogRepository = (*catalogRepo)(nil)

type catalogRepo struct{ pool *pgxpool.Pool }

func NewCatalogRepo(pool *pgxpool.Pool) *catalogRepo {
	return &catalogRepo{pool: pool}
}

func (r *catalogRepo) ListSubjects(ctx context.Context, tx repository.Tx) ([]*model.Subject, error) {
	const q = `SELECT id, name, position, created_at FROM subjects ORDER BY position, name;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Subject
	for rows.Next() {
		s := new(model.Subject)
		if err := rows.Scan(&s.ID, &s.Name, &s.Position, &s.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *catalogRepo) ListTopics(ctx context.Context, tx repository.Tx, subjectID string) ([]*model.Topic, error) {
	const q = `SELECT id, subject_id, name, position, created_at FROM topics WHERE subject_id=$1 ORDER BY position, name;`
	rows, err := queryRows(ctx, r.pool, tx, q, subjectID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Topic
	for rows.Next() {
		t := new(model.Topic)
		if err := rows.Scan(&t.ID, &t.SubjectID, &t.Name, &t.Position, &t.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *catalogRepo) ListFolders(ctx context.Context, tx repository.Tx, topicID string) ([]*model.Folder, error) {
	const q = `SELECT id, topic_id, name, position, created_at FROM folders WHERE topic_id=$1 ORDER BY position, name;`
	rows, err := queryRows(ctx, r.pool, tx, q, topicID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Folder
	for rows.Next() {
		f := new(model.Folder)
		if err := rows.Scan(&f.ID, &f.TopicID, &f.Name, &f.Position, &f.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, f)
	}
	return out, nil
}

const pdfCols = `id, folder_id, name, file_url, access_type, price, created_at, updated_at`

func (r *catalogRepo) ListPDFs(ctx context.Context, tx repository.Tx, folderID string) ([]*model.PdfDocument, error) {
	const q = `SELECT ` + pdfCols + ` FROM pdf_documents WHERE folder_id=$1 ORDER BY name;`
	rows, err := queryRows(ctx, r.pool, tx, q, folderID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.PdfDocument
	for rows.Next() {
		d := new(model.PdfDocument)
		if err := rows.Scan(&d.ID, &d.FolderID, &d.Name, &d.FileURL, &d.AccessType, &d.Price, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *catalogRepo) ListCombos(ctx context.Context, tx repository.Tx) ([]*model.Combo, error) {
	const q = `SELECT id, name, pdf_ids, access_type, price, created_at, updated_at FROM combos ORDER BY name;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Combo
	for rows.Next() {
		c := new(model.Combo)
		if err := rows.Scan(&c.ID, &c.Name, &c.PdfIDs, &c.AccessType, &c.Price, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *catalogRepo) FindPDF(ctx context.Context, tx repository.Tx, id string) (*model.PdfDocument, error) {
	const q = `SELECT ` + pdfCols + ` FROM pdf_documents WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	d := &model.PdfDocument{}
	if err := row.Scan(&d.ID, &d.FolderID, &d.Name, &d.FileURL, &d.AccessType, &d.Price, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return d, nil
}

func (r *catalogRepo) FindCombo(ctx context.Context, tx repository.Tx, id string) (*model.Combo, error) {
	const q = `SELECT id, name, pdf_ids, access_type, price, created_at, updated_at FROM combos WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	c := &model.Combo{}
	if err := row.Scan(&c.ID, &c.Name, &c.PdfIDs, &c.AccessType, &c.Price, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return c, nil
}

func (r *catalogRepo) SaveSubject(ctx context.Context, tx repository.Tx, s *model.Subject) error {
	const q = `
INSERT INTO subjects (id, name, position, created_at) VALUES ($1,$2,$3,$4)
ON CONFLICT (id) DO UPDATE SET name=$2, position=$3;`
	return wrapExec(execSQL(ctx, r.pool, tx, q, s.ID, s.Name, s.Position, s.CreatedAt))
}

func (r *catalogRepo) SaveTopic(ctx context.Context, tx repository.Tx, t *model.Topic) error {
	const q = `
INSERT INTO topics (id, subject_id, name, position, created_at) VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (id) DO UPDATE SET subject_id=$2, name=$3, position=$4;`
	return wrapExec(execSQL(ctx, r.pool, tx, q, t.ID, t.SubjectID, t.Name, t.Position, t.CreatedAt))
}

func (r *catalogRepo) SaveFolder(ctx context.Context, tx repository.Tx, f *model.Folder) error {
	const q = `
INSERT INTO folders (id, topic_id, name, position, created_at) VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (id) DO UPDATE SET topic_id=$2, name=$3, position=$4;`
	return wrapExec(execSQL(ctx, r.pool, tx, q, f.ID, f.TopicID, f.Name, f.Position, f.CreatedAt))
}

func (r *catalogRepo) SavePDF(ctx context.Context, tx repository.Tx, d *model.PdfDocument) error {
	const q = `
INSERT INTO pdf_documents (` + pdfCols + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET folder_id=$2, name=$3, file_url=$4, access_type=$5, price=$6, updated_at=$8;`
	return wrapExec(execSQL(ctx, r.pool, tx, q, d.ID, d.FolderID, d.Name, d.FileURL, d.AccessType, d.Price, d.CreatedAt, d.UpdatedAt))
}

func (r *catalogRepo) SaveCombo(ctx context.Context, tx repository.Tx, c *model.Combo) error {
	const q = `
INSERT INTO combos (id, name, pdf_ids, access_type, price, created_at, updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET name=$2, pdf_ids=$3, access_type=$4, price=$5, updated_at=$7;`
	return wrapExec(execSQL(ctx, r.pool, tx, q, c.ID, c.Name, c.PdfIDs, c.AccessType, c.Price, c.CreatedAt, c.UpdatedAt))
}

func (r *catalogRepo) DeletePDF(ctx context.Context, tx repository.Tx, id string) error {
	return wrapExec(execSQL(ctx, r.pool, tx, `DELETE FROM pdf_documents WHERE id=$1;`, id))
}

func (r *catalogRepo) DeleteCombo(ctx context.Context, tx repository.Tx, id string) error {
	return wrapExec(execSQL(ctx, r.pool, tx, `DELETE FROM combos WHERE id=$1;`, id))
}

func wrapExec(_ pgconn.CommandTag, err error) error {
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}
