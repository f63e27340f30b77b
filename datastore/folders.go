package datastore

import (
	"context"
	"fmt"

	"github.com/coreybb/tasker/models"
)

type FolderRepository struct {
	conn *Conn
}

func NewFolderRepository(conn *Conn) *FolderRepository {
	return &FolderRepository{conn: conn}
}

// CreateFolder inserts a folder. An unknown owner yields ErrInvalidReference
// where the backend enforces foreign keys.
func (r *FolderRepository) CreateFolder(ctx context.Context, folder *models.Folder) error {
	query := `INSERT INTO folders (id, name, user_id) VALUES (?, ?, ?)`
	if _, err := r.conn.exec(ctx, query, folder.ID, folder.Name, folder.UserID); err != nil {
		return fmt.Errorf("failed to insert folder: %w", classify(err, writeUpsert))
	}
	return nil
}

func (r *FolderRepository) GetFolders(ctx context.Context, userID string) ([]models.Folder, error) {
	query := `SELECT id, name, user_id FROM folders WHERE user_id = ? ORDER BY name`
	rows, err := r.conn.query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders for user %s: %w", userID, err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan folder row for user %s: %w", userID, err)
		}
		folders = append(folders, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating folder rows for user %s: %w", userID, err)
	}
	return folders, nil
}

func (r *FolderRepository) GetFolder(ctx context.Context, folderID string) (*models.Folder, error) {
	query := `SELECT id, name, user_id FROM folders WHERE id = ?`
	var f models.Folder
	if err := r.conn.queryRow(ctx, query, folderID).Scan(&f.ID, &f.Name, &f.UserID); err != nil {
		return nil, notFound(err, "folder", folderID)
	}
	return &f, nil
}

// DeleteFolder removes only the folder row. Tasks filed under it are not
// touched and keep their folder_id.
func (r *FolderRepository) DeleteFolder(ctx context.Context, folderID string) (int64, error) {
	res, err := r.conn.exec(ctx, `DELETE FROM folders WHERE id = ?`, folderID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete folder %s: %w", folderID, classify(err, writeDelete))
	}
	return rowsAffected(res)
}

// PatchFolder renames a folder. Ownership is not checked here.
func (r *FolderRepository) PatchFolder(ctx context.Context, folderID, name string) (int64, error) {
	res, err := r.conn.exec(ctx, `UPDATE folders SET name = ? WHERE id = ?`, name, folderID)
	if err != nil {
		return 0, fmt.Errorf("failed to update folder %s: %w", folderID, classify(err, writeUpsert))
	}
	return rowsAffected(res)
}
