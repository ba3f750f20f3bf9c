package testkit

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"loom/internal/decl"
	"loom/internal/program"
)

// CheckSnapshotInvariants runs a minimal set of model invariants on a parsed
// snapshot:
// 1) the snapshot names its library and carries a content digest
// 2) every declaration resolves through its own Ref with a matching kind
// 3) every member's owner exists and is a type declaration
// 4) every application names a macro and a resolvable target
func CheckSnapshotInvariants(snap *program.Snapshot) error {
	if snap == nil || snap.Program == nil {
		return fmt.Errorf("nil snapshot or program")
	}
	if snap.Library == "" {
		return fmt.Errorf("snapshot has no library")
	}
	if snap.Digest == "" {
		return fmt.Errorf("snapshot has no digest")
	}
	found := false
	for _, uri := range snap.Program.Libraries() {
		if uri == snap.Library {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("library %q not in program model", snap.Library)
	}

	// 2) refs round-trip; IDs stay within the allocation range
	decls := snap.Program.Decls()
	count, err := safecast.Conv[uint32](len(decls))
	if err != nil {
		return fmt.Errorf("declaration count overflow: %w", err)
	}
	ctx := context.Background()
	for _, d := range decls {
		ref := d.Ref()
		if !ref.IsValid() {
			return fmt.Errorf("declaration %q has an invalid ref", d.Name())
		}
		if uint32(ref.ID) > count {
			return fmt.Errorf("ref %v beyond allocation range %d", ref, count)
		}
		back, ok := snap.Program.Decl(ref)
		if !ok {
			return fmt.Errorf("ref %v does not resolve", ref)
		}
		if back.Kind() != d.Kind() {
			return fmt.Errorf("ref %v resolved to kind %s", ref, back.Kind())
		}

		// 3) member ownership
		if m, isMember := d.(decl.Member); isMember {
			owner, ok := snap.Program.Decl(m.Owner())
			if !ok {
				return fmt.Errorf("member %q has unknown owner %v", d.Name(), m.Owner())
			}
			if !owner.Kind().IsType() {
				return fmt.Errorf("member %q owned by non-type %s", d.Name(), owner.Kind())
			}
		}
	}

	// 4) applications bind to the model
	for i, app := range snap.Applications {
		if app.MacroName == "" {
			return fmt.Errorf("applications[%d] has no macro name", i)
		}
		if _, err := snap.Program.DeclarationOf(ctx, app.Target); err != nil {
			return fmt.Errorf("applications[%d] target: %w", i, err)
		}
	}
	return nil
}
