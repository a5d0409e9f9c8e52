package coreedit

import (
	"github.com/Theo-Muyard/Seed-core/command"
	"github.com/Theo-Muyard/Seed-core/dispatch"
	"github.com/Theo-Muyard/Seed-core/errcode"
	"github.com/Theo-Muyard/Seed-core/vfstree"
)

func registerFSCommands(d *dispatch.Dispatcher) error {
	entries := []struct {
		id command.ID
		fn dispatch.Handler
	}{
		{command.OpenRoot, cmdRootOpen},
		{command.CloseRoot, cmdRootClose},

		{command.CreateDir, cmdDirCreate},
		{command.DeleteDir, cmdDirDelete},
		{command.MoveDir, cmdDirMove},

		{command.CreateFile, cmdFileCreate},
		{command.DeleteFile, cmdFileDelete},
		{command.MoveFile, cmdFileMove},
		{command.ReadFile, cmdFileRead},
		{command.WriteFile, cmdFileWrite},
	}
	for _, e := range entries {
		if err := d.Register(e.id, e.fn); err != nil {
			return err
		}
	}
	return nil
}

func fsCtx(manager any) (*vfstree.Tree, error) {
	m, ok := manager.(*Manager)
	if !ok || m == nil {
		return nil, errcode.InvalidManager
	}
	if m.fs == nil {
		return nil, errcode.FSContextNotInitialized
	}
	return m.fs, nil
}

func cmdRootOpen(manager any, cmd *command.Command) error {
	tree, err := fsCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.OpenRootPayload)
	if !ok {
		return errcode.InvalidPayload
	}
	return tree.OpenRoot(p.Path)
}

func cmdRootClose(manager any, cmd *command.Command) error {
	tree, err := fsCtx(manager)
	if err != nil {
		return err
	}
	// CloseRoot carries no payload
	return tree.CloseRoot()
}

func cmdDirCreate(manager any, cmd *command.Command) error {
	tree, err := fsCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.CreateDirPayload)
	if !ok {
		return errcode.InvalidPayload
	}
	return tree.CreateDir(p.Path)
}

func cmdDirDelete(manager any, cmd *command.Command) error {
	tree, err := fsCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.DeleteDirPayload)
	if !ok {
		return errcode.InvalidPayload
	}
	return tree.DeleteDir(p.Path)
}

func cmdDirMove(manager any, cmd *command.Command) error {
	tree, err := fsCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.MoveDirPayload)
	if !ok {
		return errcode.InvalidPayload
	}
	return tree.MoveDir(p.OldPath, p.NewPath)
}

func cmdFileCreate(manager any, cmd *command.Command) error {
	tree, err := fsCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.CreateFilePayload)
	if !ok {
		return errcode.InvalidPayload
	}
	return tree.CreateFile(p.Path)
}

func cmdFileDelete(manager any, cmd *command.Command) error {
	tree, err := fsCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.DeleteFilePayload)
	if !ok {
		return errcode.InvalidPayload
	}
	return tree.DeleteFile(p.Path)
}

func cmdFileMove(manager any, cmd *command.Command) error {
	tree, err := fsCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.MoveFilePayload)
	if !ok {
		return errcode.InvalidPayload
	}
	return tree.MoveFile(p.OldPath, p.NewPath)
}

func cmdFileRead(manager any, cmd *command.Command) error {
	tree, err := fsCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.ReadFilePayload)
	if !ok {
		return errcode.InvalidPayload
	}
	data, err := tree.ReadFile(p.Path)
	if err != nil {
		return err
	}
	p.OutData = data
	p.OutLen = uint64(len(data))
	return nil
}

func cmdFileWrite(manager any, cmd *command.Command) error {
	tree, err := fsCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.WriteFilePayload)
	if !ok {
		return errcode.InvalidPayload
	}
	return tree.WriteFile(p.Path, p.Data)
}
