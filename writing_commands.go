package coreedit

import (
	"github.com/Theo-Muyard/Seed-core/command"
	"github.com/Theo-Muyard/Seed-core/dispatch"
	"github.com/Theo-Muyard/Seed-core/errcode"
	"github.com/Theo-Muyard/Seed-core/textbuf"
)

func registerWritingCommands(d *dispatch.Dispatcher) error {
	entries := []struct {
		id command.ID
		fn dispatch.Handler
	}{
		{command.CreateBuffer, cmdBufferCreate},
		{command.DeleteBuffer, cmdBufferDestroy},

		{command.InsertLine, cmdLineInsert},
		{command.DeleteLine, cmdLineDelete},
		{command.SplitLine, cmdLineSplit},
		{command.JoinLine, cmdLineJoin},
		{command.GetLine, cmdGetLine},

		{command.InsertText, cmdTextInsert},
		{command.DeleteText, cmdTextDelete},
	}
	for _, e := range entries {
		if err := d.Register(e.id, e.fn); err != nil {
			return err
		}
	}
	return nil
}

func writingCtx(manager any) (*textbuf.Context, error) {
	m, ok := manager.(*Manager)
	if !ok || m == nil {
		return nil, errcode.InvalidManager
	}
	if m.writing == nil {
		return nil, errcode.WritingContextNotInitialized
	}
	return m.writing, nil
}

// bufferByID resolves a payload's buffer id against the table.
func bufferByID(ctx *textbuf.Context, id uint64) (*textbuf.Buffer, error) {
	buf := ctx.Buffer(id)
	if buf == nil {
		return nil, errcode.BufferNotFound
	}
	return buf, nil
}

func cmdBufferCreate(manager any, cmd *command.Command) error {
	ctx, err := writingCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.CreateBufferPayload)
	if !ok {
		return errcode.InvalidPayload
	}
	p.OutBufferID = ctx.CreateBuffer()
	return nil
}

func cmdBufferDestroy(manager any, cmd *command.Command) error {
	ctx, err := writingCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.DeleteBufferPayload)
	if !ok {
		return errcode.InvalidPayload
	}
	if err := ctx.DestroyBuffer(p.BufferID); err != nil {
		return errcode.BufferNotFound
	}
	return nil
}

func cmdLineInsert(manager any, cmd *command.Command) error {
	ctx, err := writingCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.InsertLinePayload)
	if !ok {
		return errcode.InvalidPayload
	}
	buf, err := bufferByID(ctx, p.BufferID)
	if err != nil {
		return err
	}
	if err := buf.InsertLine(textbuf.NewLine(), int(p.Line)); err != nil {
		if textbuf.IsIndexError(err) {
			return errcode.LineNotFound
		}
		return errcode.OperationFailed
	}
	return nil
}

func cmdLineDelete(manager any, cmd *command.Command) error {
	ctx, err := writingCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.DeleteLinePayload)
	if !ok {
		return errcode.InvalidPayload
	}
	buf, err := bufferByID(ctx, p.BufferID)
	if err != nil {
		return err
	}
	line := buf.GetLine(int(p.Line))
	if line == nil {
		return errcode.LineNotFound
	}
	buf.DeleteLine(line)
	return nil
}

func cmdLineSplit(manager any, cmd *command.Command) error {
	ctx, err := writingCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.SplitLinePayload)
	if !ok {
		return errcode.InvalidPayload
	}
	buf, err := bufferByID(ctx, p.BufferID)
	if err != nil {
		return err
	}
	line := buf.GetLine(int(p.Line))
	if line == nil {
		return errcode.LineNotFound
	}
	byteIndex := textbuf.ColumnToByte(line.Bytes(), int(p.Index))
	if _, err := buf.SplitLine(line, byteIndex); err != nil {
		return errcode.OperationFailed
	}
	return nil
}

func cmdLineJoin(manager any, cmd *command.Command) error {
	ctx, err := writingCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.JoinLinePayload)
	if !ok {
		return errcode.InvalidPayload
	}
	buf, err := bufferByID(ctx, p.BufferID)
	if err != nil {
		return err
	}
	dst := buf.GetLine(int(p.Dst))
	src := buf.GetLine(int(p.Src))
	if dst == nil || src == nil {
		return errcode.LineNotFound
	}
	if dst == src || src.Prev() != dst {
		return errcode.InvalidPayload
	}
	if _, err := buf.JoinLine(dst, src); err != nil {
		return errcode.OperationFailed
	}
	return nil
}

func cmdGetLine(manager any, cmd *command.Command) error {
	ctx, err := writingCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.GetLinePayload)
	if !ok {
		return errcode.InvalidPayload
	}
	buf, err := bufferByID(ctx, p.BufferID)
	if err != nil {
		return err
	}
	line := buf.GetLine(int(p.Line))
	if line == nil {
		return errcode.LineNotFound
	}
	// a borrow: valid until the next mutation of this line
	p.OutData = line.Bytes()
	p.OutSize = uint64(line.Size())
	return nil
}

func cmdTextInsert(manager any, cmd *command.Command) error {
	ctx, err := writingCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.InsertTextPayload)
	if !ok {
		return errcode.InvalidPayload
	}
	buf, err := bufferByID(ctx, p.BufferID)
	if err != nil {
		return err
	}
	line := buf.GetLine(int(p.Line))
	if line == nil {
		return errcode.LineNotFound
	}
	if p.Size > uint64(len(p.Data)) {
		return errcode.InvalidPayload
	}
	data := p.Data[:p.Size]
	byteIndex := line.Size()
	if p.Index >= 0 {
		byteIndex = textbuf.ColumnToByte(line.Bytes(), int(p.Index))
	}
	if err := line.InsertBytes(byteIndex, data); err != nil {
		return errcode.OperationFailed
	}
	return nil
}

func cmdTextDelete(manager any, cmd *command.Command) error {
	ctx, err := writingCtx(manager)
	if err != nil {
		return err
	}
	p, ok := cmd.Payload.(*command.DeleteTextPayload)
	if !ok {
		return errcode.InvalidPayload
	}
	buf, err := bufferByID(ctx, p.BufferID)
	if err != nil {
		return err
	}
	line := buf.GetLine(int(p.Line))
	if line == nil {
		return errcode.LineNotFound
	}
	// both ends translate from codepoint columns to byte offsets
	start := textbuf.ColumnToByte(line.Bytes(), int(p.Index))
	end := textbuf.ColumnToByte(line.Bytes(), int(p.Index+p.Size))
	if err := line.DeleteBytes(start, end-start); err != nil {
		return errcode.OperationFailed
	}
	return nil
}
