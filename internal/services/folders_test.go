package services_test

import (
	"testing"

	"github.com/NRodriguezT98/ryr-documentos/internal/services"
	"github.com/NRodriguezT98/ryr-documentos/internal/storage"
	"github.com/NRodriguezT98/ryr-documentos/internal/types"
	"gorm.io/gorm"
)

func mustFolder(t *testing.T, db *gorm.DB, unitID, name string, parentID *string) string {
	t.Helper()
	f, err := services.CreateFolder(db, services.CreateFolderInput{
		HousingUnitID: unitID,
		Name:          name,
		Color:         "#1565c0",
		ParentID:      parentID,
	}, userActor())
	if err != nil {
		t.Fatalf("Failed to create folder %s: %v", name, err)
	}
	return f.ID
}

// TestCreateFolder tests creation and nesting validation.
func TestCreateFolder(t *testing.T) {
	db := setupTestDB(t)

	rootID := mustFolder(t, db, "unit-1", "Escrituras", nil)
	childID := mustFolder(t, db, "unit-1", "Anexos", &rootID)
	if childID == "" {
		t.Fatal("Expected a child folder id")
	}

	// Parent in another unit is rejected
	_, err := services.CreateFolder(db, services.CreateFolderInput{
		HousingUnitID: "unit-2",
		Name:          "Cruzada",
		ParentID:      &rootID,
	}, userActor())
	wantKind(t, err, types.KindValidation)

	_, err = services.CreateFolder(db, services.CreateFolderInput{HousingUnitID: "unit-1"}, userActor())
	wantKind(t, err, types.KindValidation)
}

// TestMoveFolderCycleRejection tests that a folder can never become its own
// ancestor.
func TestMoveFolderCycleRejection(t *testing.T) {
	db := setupTestDB(t)

	a := mustFolder(t, db, "unit-1", "A", nil)
	b := mustFolder(t, db, "unit-1", "B", &a)
	c := mustFolder(t, db, "unit-1", "C", &b)

	// Self-parenting
	err := services.MoveFolder(db, a, &a, userActor())
	wantKind(t, err, types.KindValidation)

	// Direct child
	err = services.MoveFolder(db, a, &b, userActor())
	wantKind(t, err, types.KindValidation)

	// Deeper descendant
	err = services.MoveFolder(db, a, &c, userActor())
	wantKind(t, err, types.KindValidation)

	// A legal move still works: C to the top level, then under A
	if err := services.MoveFolder(db, c, nil, userActor()); err != nil {
		t.Fatalf("Move to top level failed: %v", err)
	}
	if err := services.MoveFolder(db, c, &a, userActor()); err != nil {
		t.Fatalf("Move under A failed: %v", err)
	}
}

// TestFolderTreeCounts tests the hierarchy with recursive distinct-chain
// counts, trash excluded.
func TestFolderTreeCounts(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	top := mustFolder(t, db, "unit-1", "Documentos", nil)
	sub := mustFolder(t, db, "unit-1", "Licencias", &top)

	// One chain with two versions in the subfolder: counts as one document
	d1 := createVersion(t, db, store, "", "unit-1", "v1")
	createVersion(t, db, store, d1.ChainRootID, "", "v2")
	if err := services.AssignChainFolder(db, d1.ChainRootID, &sub, userActor()); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	// One chain directly in the top folder
	d2 := createVersion(t, db, store, "", "unit-1", "otro")
	if err := services.AssignChainFolder(db, d2.ChainRootID, &top, userActor()); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	// A trashed chain contributes nothing
	d3 := createVersion(t, db, store, "", "unit-1", "borrado")
	if err := services.AssignChainFolder(db, d3.ChainRootID, &sub, userActor()); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if err := services.SoftDeleteChain(db, d3.ChainRootID, deleteReason, adminActor()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	tree, err := services.FolderTree(db, "unit-1")
	if err != nil {
		t.Fatalf("FolderTree failed: %v", err)
	}
	if len(tree) != 1 {
		t.Fatalf("Expected one root folder, got %d", len(tree))
	}

	root := tree[0]
	if root.ID != top {
		t.Fatalf("Expected root %s, got %s", top, root.ID)
	}
	// Top counts its own document plus the subfolder's
	if root.DocumentCount != 2 {
		t.Errorf("Expected aggregated count 2, got %d", root.DocumentCount)
	}
	if len(root.Children) != 1 || root.Children[0].ID != sub {
		t.Fatalf("Expected one child folder, got %+v", root.Children)
	}
	if root.Children[0].DocumentCount != 1 {
		t.Errorf("Expected subfolder count 1, got %d", root.Children[0].DocumentCount)
	}
}

// TestAssignChainFolderValidation tests unit matching and unfiled moves.
func TestAssignChainFolderValidation(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	other := mustFolder(t, db, "unit-2", "Ajena", nil)
	d := createVersion(t, db, store, "", "unit-1", "contenido")

	err := services.AssignChainFolder(db, d.ChainRootID, &other, userActor())
	wantKind(t, err, types.KindValidation)

	if err := services.AssignChainFolder(db, d.ChainRootID, nil, userActor()); err != nil {
		t.Fatalf("Unfiling failed: %v", err)
	}
	if got := loadVersion(t, db, d.ID).FolderID; got != nil {
		t.Errorf("Expected unfiled document, got folder %v", got)
	}
}

// TestDeleteFolderPreconditions tests that only empty folders can go.
func TestDeleteFolderPreconditions(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	top := mustFolder(t, db, "unit-1", "Padre", nil)
	sub := mustFolder(t, db, "unit-1", "Hija", &top)

	err := services.DeleteFolder(db, top, userActor())
	wantKind(t, err, types.KindPrecondition)

	d := createVersion(t, db, store, "", "unit-1", "contenido")
	if err := services.AssignChainFolder(db, d.ChainRootID, &sub, userActor()); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	err = services.DeleteFolder(db, sub, userActor())
	wantKind(t, err, types.KindPrecondition)

	if err := services.AssignChainFolder(db, d.ChainRootID, nil, userActor()); err != nil {
		t.Fatalf("Unfiling failed: %v", err)
	}
	if err := services.DeleteFolder(db, sub, userActor()); err != nil {
		t.Fatalf("Delete of empty folder failed: %v", err)
	}
	if err := services.DeleteFolder(db, top, userActor()); err != nil {
		t.Fatalf("Delete of emptied parent failed: %v", err)
	}

	err = services.DeleteFolder(db, top, userActor())
	wantKind(t, err, types.KindNotFound)
}

// TestRenameFolder tests the rename operation.
func TestRenameFolder(t *testing.T) {
	db := setupTestDB(t)

	id := mustFolder(t, db, "unit-1", "Viejo", nil)
	f, err := services.RenameFolder(db, id, "Nuevo", "#2e7d32", userActor())
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if f.Name != "Nuevo" || f.Color != "#2e7d32" {
		t.Errorf("Expected renamed folder, got %+v", f)
	}

	_, err = services.RenameFolder(db, id, "", "", userActor())
	wantKind(t, err, types.KindValidation)
}
