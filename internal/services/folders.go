package services

import (
	"errors"
	"time"

	"github.com/NRodriguezT98/ryr-documentos/internal/models"
	"github.com/NRodriguezT98/ryr-documentos/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateFolderInput is the input for CreateFolder.
type CreateFolderInput struct {
	HousingUnitID string
	Name          string
	Color         string
	ParentID      *string
}

// CreateFolder creates a folder under a housing unit, optionally nested
// inside an existing folder of the same unit.
func CreateFolder(db *gorm.DB, in CreateFolderInput, actor Actor) (*models.Folder, error) {
	if !actor.CanEdit() {
		return nil, types.Authorizationf("actor %s lacks the edit capability", actor.ID)
	}
	if in.HousingUnitID == "" {
		return nil, types.Validationf("housing unit id is required")
	}
	if in.Name == "" {
		return nil, types.Validationf("folder name is required")
	}

	f := models.Folder{
		ID:            uuid.NewString(),
		HousingUnitID: in.HousingUnitID,
		Name:          in.Name,
		Color:         in.Color,
		ParentID:      in.ParentID,
		CreatedAt:     time.Now(),
		CreatedBy:     actor.ID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if in.ParentID != nil {
			parent, err := getFolder(tx, *in.ParentID)
			if err != nil {
				return err
			}
			if parent.HousingUnitID != in.HousingUnitID {
				return types.Validationf("parent folder belongs to a different housing unit")
			}
		}
		return tx.Create(&f).Error
	})
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// RenameFolder updates a folder's name and color.
func RenameFolder(db *gorm.DB, folderID, name, color string, actor Actor) (*models.Folder, error) {
	if !actor.CanEdit() {
		return nil, types.Authorizationf("actor %s lacks the edit capability", actor.ID)
	}
	if name == "" {
		return nil, types.Validationf("folder name is required")
	}

	var f *models.Folder
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		f, err = getFolder(tx, folderID)
		if err != nil {
			return err
		}
		return tx.Model(f).Updates(map[string]interface{}{
			"name":  name,
			"color": color,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// MoveFolder re-parents a folder. A nil parent moves it to the top level.
// Moving a folder under itself or under any of its descendants is rejected.
func MoveFolder(db *gorm.DB, folderID string, newParentID *string, actor Actor) error {
	if !actor.CanEdit() {
		return types.Authorizationf("actor %s lacks the edit capability", actor.ID)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		f, err := getFolder(tx, folderID)
		if err != nil {
			return err
		}

		if newParentID != nil {
			if *newParentID == folderID {
				return types.Validationf("a folder cannot be its own parent")
			}
			parent, err := getFolder(tx, *newParentID)
			if err != nil {
				return err
			}
			if parent.HousingUnitID != f.HousingUnitID {
				return types.Validationf("target folder belongs to a different housing unit")
			}

			// Walk up from the target: landing on the moved folder means the
			// target is one of its descendants.
			cursor := parent
			for cursor.ParentID != nil {
				if *cursor.ParentID == folderID {
					return types.Validationf("cannot move a folder into one of its own subfolders")
				}
				cursor, err = getFolder(tx, *cursor.ParentID)
				if err != nil {
					return err
				}
			}
		}

		return tx.Model(f).Update("parent_id", newParentID).Error
	})
}

// DeleteFolder removes an empty folder. Folders holding subfolders or
// documents must be emptied first; nothing cascades.
func DeleteFolder(db *gorm.DB, folderID string, actor Actor) error {
	if !actor.CanEdit() {
		return types.Authorizationf("actor %s lacks the edit capability", actor.ID)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		f, err := getFolder(tx, folderID)
		if err != nil {
			return err
		}

		var children int64
		if err := tx.Model(&models.Folder{}).Where("parent_id = ?", f.ID).Count(&children).Error; err != nil {
			return err
		}
		if children > 0 {
			return types.Preconditionf("folder %s has subfolders; move or delete them first", f.ID)
		}

		var docs int64
		err = tx.Model(&models.DocumentVersion{}).
			Where("folder_id = ? AND lifecycle_status = ?", f.ID, models.StatusActive).
			Count(&docs).Error
		if err != nil {
			return err
		}
		if docs > 0 {
			return types.Preconditionf("folder %s still holds documents; move them first", f.ID)
		}

		return tx.Delete(&models.Folder{}, "id = ?", f.ID).Error
	})
}

// FolderNode is one node of a housing unit's folder tree. DocumentCount
// includes documents in all nested subfolders.
type FolderNode struct {
	models.Folder
	DocumentCount int64        `json:"documentCount"`
	Children      []FolderNode `json:"children"`
}

// FolderTree returns the full folder hierarchy of a housing unit with
// recursive document counts. Counts consider distinct chains, not versions,
// and only active ones.
func FolderTree(db *gorm.DB, housingUnitID string) ([]FolderNode, error) {
	var folders []models.Folder
	err := db.Where("housing_unit_id = ?", housingUnitID).
		Order("name ASC").
		Find(&folders).Error
	if err != nil {
		return nil, err
	}

	type countRow struct {
		FolderID string
		N        int64
	}
	var counts []countRow
	err = db.Model(&models.DocumentVersion{}).
		Select("folder_id, COUNT(DISTINCT chain_root_id) AS n").
		Where("housing_unit_id = ? AND folder_id IS NOT NULL AND lifecycle_status = ?",
			housingUnitID, models.StatusActive).
		Group("folder_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	direct := make(map[string]int64, len(counts))
	for _, c := range counts {
		direct[c.FolderID] = c.N
	}

	byID := make(map[string]models.Folder, len(folders))
	childIDs := make(map[string][]string, len(folders))
	var rootIDs []string
	for _, f := range folders {
		byID[f.ID] = f
	}
	for _, f := range folders {
		if f.ParentID != nil {
			if _, ok := byID[*f.ParentID]; ok {
				childIDs[*f.ParentID] = append(childIDs[*f.ParentID], f.ID)
				continue
			}
		}
		// Orphans surface at the top level rather than vanish.
		rootIDs = append(rootIDs, f.ID)
	}

	var build func(id string) FolderNode
	build = func(id string) FolderNode {
		n := FolderNode{Folder: byID[id], DocumentCount: direct[id]}
		for _, cid := range childIDs[id] {
			child := build(cid)
			n.DocumentCount += child.DocumentCount
			n.Children = append(n.Children, child)
		}
		return n
	}

	out := make([]FolderNode, 0, len(rootIDs))
	for _, id := range rootIDs {
		out = append(out, build(id))
	}
	return out, nil
}

// AssignChainFolder moves every active version of a chain into a folder.
// A nil folder id leaves the chain unfiled.
func AssignChainFolder(db *gorm.DB, chainRootID string, folderID *string, actor Actor) error {
	if !actor.CanEdit() {
		return types.Authorizationf("actor %s lacks the edit capability", actor.ID)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		root, err := GetVersion(tx, chainRootID)
		if err != nil {
			return err
		}

		if folderID != nil {
			f, err := getFolder(tx, *folderID)
			if err != nil {
				return err
			}
			if f.HousingUnitID != root.HousingUnitID {
				return types.Validationf("folder belongs to a different housing unit")
			}
		}

		err = tx.Model(&models.DocumentVersion{}).
			Where("chain_root_id = ? AND lifecycle_status = ?", chainRootID, models.StatusActive).
			Update("folder_id", folderID).Error
		if err != nil {
			return err
		}

		meta := map[string]interface{}{}
		if folderID != nil {
			meta["folder_id"] = *folderID
		}
		return recordAudit(tx, models.AuditFolderAssigned, root, actor, "", meta)
	})
}

func getFolder(tx *gorm.DB, folderID string) (*models.Folder, error) {
	var f models.Folder
	err := tx.Where("id = ?", folderID).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFoundf("folder %s not found", folderID)
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}
