package ofs

import (
	"sort"

	"github.com/Abdulbasit24075/omnifs/internal/jail"
	"github.com/Abdulbasit24075/omnifs/internal/logger"
	"github.com/Abdulbasit24075/omnifs/internal/tree"
	"github.com/Abdulbasit24075/omnifs/internal/volume"
	"github.com/Abdulbasit24075/omnifs/internal/wire"
)

// Dispatch parses the three always-present fields off req, routes to
// the matching operation handler, and converts any error into a
// client-facing error response. It is the recovery boundary: nothing
// below it panics past this point in normal operation.
func (s *Server) Dispatch(req wire.Request) wire.Response {
	s.snapshotMu.Lock()
	defer s.snapshotMu.Unlock()
	switch req.Operation {
	case "user_login":
		return s.handleUserLogin(req)
	case "user_create":
		return s.handleUserCreate(req)
	case "user_list":
		return s.handleUserList(req)
	case "user_delete":
		return s.handleUserDelete(req)
	case "get_stats":
		return s.handleGetStats(req)
	case "dir_list":
		return s.handleDirList(req)
	case "file_read":
		return s.handleFileRead(req)
	case "file_create":
		return s.handleFileCreate(req)
	case "dir_create":
		req.Type = "dir"
		return s.handleFileCreate(req)
	case "file_delete":
		return s.handleFileDelete(req)
	case "dir_delete":
		return s.handleDirDelete(req)
	default:
		return errResponse(req.RequestID, ErrUnknownOperation)
	}
}

func errResponse(requestID string, err error) wire.Response {
	return wire.Error(requestID, err.Error(), codeFor[err])
}

// authenticate resolves a session id to its owning username and role.
func (s *Server) authenticate(sessionID string) (username string, isAdmin bool, ok bool) {
	username, found := s.sessions.Lookup(sessionID)
	if !found {
		return "", false, false
	}
	rec, _, found := s.userIdx.Lookup(username)
	if !found || !rec.Active {
		return "", false, false
	}
	return username, rec.Role == volume.RoleAdmin, true
}

func (s *Server) handleUserLogin(req wire.Request) wire.Response {
	rec, _, found := s.userIdx.Lookup(req.Username)
	if !found || !rec.Active || !passwordMatches(req.Username, req.Password, rec) {
		return errResponse(req.RequestID, ErrInvalidCredentials)
	}
	sid := s.sessions.Login(req.Username)
	logger.Info("user %q logged in", req.Username)
	return wire.Success(req.RequestID, map[string]any{"session_id": sid})
}

func (s *Server) handleUserCreate(req wire.Request) wire.Response {
	if _, _, exists := s.userIdx.Lookup(req.Username); exists {
		return errResponse(req.RequestID, ErrAlreadyExists)
	}
	slot, ok := s.findFreeUserSlot()
	if !ok {
		return errResponse(req.RequestID, ErrUserTableFull)
	}
	rec := volume.UserRecord{
		Username:     req.Username,
		PasswordHash: hashPassword(req.Username, req.Password),
		Role:         volume.RoleNormal,
		CreatedAt:    nowRecorded(),
		Active:       true,
	}
	if err := s.vol.WriteUserSlot(slot, s.header.MaxUsers, rec); err != nil {
		return errResponse(req.RequestID, ErrDiskFull)
	}
	s.slots[slot] = rec
	s.userIdx.Insert(req.Username, slot, rec)

	if err := s.provisionHomeDirectory(req.Username); err != nil {
		return errResponse(req.RequestID, err)
	}

	logger.Info("created user %q", req.Username)
	return wire.Success(req.RequestID, map[string]any{"username": req.Username})
}

// provisionHomeDirectory allocates one block and links a new home
// directory entry for username under /home, persisting it into a free
// slot of /home's directory block.
func (s *Server) provisionHomeDirectory(username string) error {
	homeNode := tree.FindChild(s.dirTree.Root(), "home")
	start, ok := s.bitmap.Allocate(1)
	if !ok {
		return ErrDiskFull
	}
	entry := volume.DirEntry{
		Name:        username,
		Type:        volume.EntryDirectory,
		Inode:       s.dirTree.NextInode(),
		ParentInode: homeNode.Entry.Inode,
		StartBlock:  start,
	}
	slot, ok := s.findFreeDirSlot(homeNode.Block)
	if !ok {
		s.bitmap.Free(start, 1)
		return ErrDiskFull
	}
	if err := s.vol.WriteDirSlot(homeNode.Block, slot, entry); err != nil {
		s.bitmap.Free(start, 1)
		return err
	}
	if err := s.vol.WriteBlock(start, nil); err != nil {
		return err
	}
	tree.AddChild(homeNode, &tree.Node{Entry: entry, Block: start, Slot: slot})
	return nil
}

func (s *Server) handleUserList(req wire.Request) wire.Response {
	entries := s.userIdx.Enumerate()
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		if !e.Record.Active {
			continue
		}
		role := "user"
		if e.Record.Role == volume.RoleAdmin {
			role = "admin"
		}
		out = append(out, map[string]any{"username": e.Username, "role": role})
	}
	sort.Slice(out, func(i, j int) bool { return out[i]["username"].(string) < out[j]["username"].(string) })
	return wire.Success(req.RequestID, out)
}

func (s *Server) handleUserDelete(req wire.Request) wire.Response {
	if req.Username == DefaultAdminUsername {
		return errResponse(req.RequestID, ErrAccessDenied)
	}
	rec, slot, found := s.userIdx.Lookup(req.Username)
	if !found {
		return errResponse(req.RequestID, ErrUserNotFound)
	}
	rec.Active = false
	if err := s.vol.WriteUserSlot(slot, s.header.MaxUsers, rec); err != nil {
		return errResponse(req.RequestID, ErrDiskFull)
	}
	s.slots[slot] = rec
	s.userIdx.Update(req.Username, rec)
	logger.Info("deleted user %q", req.Username)
	return wire.Success(req.RequestID, map[string]any{"username": req.Username})
}

func (s *Server) handleGetStats(req wire.Request) wire.Response {
	total, used, free, _, files, dirs := s.snapshotLocked()
	return wire.Success(req.RequestID, map[string]any{
		"total_size":        total,
		"used_space":        used,
		"free_space":        free,
		"total_files":       files,
		"total_directories": dirs,
	})
}

// Snapshot reports current volume occupancy and entry counts, for the
// admin HTTP status page. It takes the same lock Dispatch holds during
// a request so a concurrent read never observes a partially applied
// mutation.
func (s *Server) Snapshot() (total, used, free uint64, userCount, files, dirs int) {
	s.snapshotMu.RLock()
	defer s.snapshotMu.RUnlock()
	return s.snapshotLocked()
}

// snapshotLocked is the lock-free body of Snapshot, callable from
// Dispatch handlers that already hold snapshotMu for the duration of
// the request.
func (s *Server) snapshotLocked() (total, used, free uint64, userCount, files, dirs int) {
	blockSize := uint64(s.header.BlockSize)
	free = uint64(s.bitmap.FreeBlocks()) * blockSize
	total = s.header.TotalSize
	used = total - free
	userCount = s.userIdx.Len()
	files, dirs = countEntries(s.dirTree.Root())
	return
}

// countEntries recursively counts files and directories beneath node,
// excluding node itself (so the root is never counted).
func countEntries(node *tree.Node) (files, dirs int) {
	for _, c := range node.Children {
		if c.IsDir() {
			dirs++
			cf, cd := countEntries(c)
			files += cf
			dirs += cd
		} else {
			files++
		}
	}
	return files, dirs
}

func (s *Server) handleDirList(req wire.Request) wire.Response {
	username, isAdmin, ok := s.authenticate(req.SessionID)
	if !ok {
		return errResponse(req.RequestID, ErrAccessDenied)
	}
	physical, err := jail.Translate(username, isAdmin, req.Path)
	if err != nil {
		return errResponse(req.RequestID, ErrTraversal)
	}
	node := s.dirTree.Resolve(physical)
	if node == nil || !node.IsDir() {
		return wire.Success(req.RequestID, []map[string]any{})
	}
	children := tree.ListDirectory(node)
	out := make([]map[string]any, 0, len(children))
	for _, c := range children {
		kind := "file"
		if c.IsDir() {
			kind = "dir"
		}
		out = append(out, map[string]any{"name": c.Entry.Name, "type": kind, "size": c.Entry.Size})
	}
	return wire.Success(req.RequestID, out)
}

func (s *Server) handleFileRead(req wire.Request) wire.Response {
	username, isAdmin, ok := s.authenticate(req.SessionID)
	if !ok {
		return errResponse(req.RequestID, ErrAccessDenied)
	}
	physical, err := jail.Translate(username, isAdmin, req.Path)
	if err != nil {
		return errResponse(req.RequestID, ErrTraversal)
	}
	node := s.dirTree.Resolve(physical)
	if node == nil {
		return errResponse(req.RequestID, ErrPathNotFound)
	}
	if node.IsDir() {
		return errResponse(req.RequestID, ErrNotADirectory)
	}
	data, err := s.vol.ReadFileBytes(node.Entry.StartBlock, node.Entry.Size)
	if err != nil {
		return errResponse(req.RequestID, ErrPathNotFound)
	}
	return wire.Success(req.RequestID, map[string]any{"content": string(data)})
}

func (s *Server) handleFileCreate(req wire.Request) wire.Response {
	username, isAdmin, ok := s.authenticate(req.SessionID)
	if !ok {
		return errResponse(req.RequestID, ErrAccessDenied)
	}
	physical, err := jail.Translate(username, isAdmin, req.Path)
	if err != nil {
		return errResponse(req.RequestID, ErrTraversal)
	}
	parentPath, name := splitParent(physical)
	parent := s.dirTree.Resolve(parentPath)
	if parent == nil || !parent.IsDir() {
		return errResponse(req.RequestID, ErrPathNotFound)
	}
	if tree.FindChild(parent, name) != nil {
		return errResponse(req.RequestID, ErrAlreadyExists)
	}

	isDir := req.Type == "dir"
	data := []byte(req.Data)
	blocksNeeded := volume.BlocksNeeded(uint64(len(data)), s.header.BlockSize)
	start, ok := s.bitmap.Allocate(blocksNeeded)
	if !ok {
		return errResponse(req.RequestID, ErrDiskFull)
	}

	entryType := volume.EntryFile
	if isDir {
		entryType = volume.EntryDirectory
	}
	entry := volume.DirEntry{
		Name:        name,
		Type:        entryType,
		Size:        uint64(len(data)),
		Inode:       s.dirTree.NextInode(),
		ParentInode: parent.Entry.Inode,
		StartBlock:  start,
	}

	slot, ok := s.findFreeDirSlot(parent.Block)
	if !ok {
		s.bitmap.Free(start, blocksNeeded)
		return errResponse(req.RequestID, ErrDiskFull)
	}
	if err := s.vol.WriteDirSlot(parent.Block, slot, entry); err != nil {
		s.bitmap.Free(start, blocksNeeded)
		return errResponse(req.RequestID, ErrDiskFull)
	}
	if isDir {
		if err := s.vol.WriteBlock(start, nil); err != nil {
			return errResponse(req.RequestID, ErrDiskFull)
		}
	} else if err := s.vol.WriteFileBytes(start, data); err != nil {
		return errResponse(req.RequestID, ErrDiskFull)
	}

	child := &tree.Node{Entry: entry, Slot: slot}
	if isDir {
		child.Block = start
	}
	tree.AddChild(parent, child)

	logger.Debug("created %q under inode %d", name, parent.Entry.Inode)
	return wire.Success(req.RequestID, map[string]any{"name": name})
}

func (s *Server) handleFileDelete(req wire.Request) wire.Response {
	return s.deleteEntry(req, false)
}

func (s *Server) handleDirDelete(req wire.Request) wire.Response {
	return s.deleteEntry(req, true)
}

func (s *Server) deleteEntry(req wire.Request, wantDir bool) wire.Response {
	username, isAdmin, ok := s.authenticate(req.SessionID)
	if !ok {
		return errResponse(req.RequestID, ErrAccessDenied)
	}
	physical, err := jail.Translate(username, isAdmin, req.Path)
	if err != nil {
		return errResponse(req.RequestID, ErrTraversal)
	}
	parentPath, name := splitParent(physical)
	parent := s.dirTree.Resolve(parentPath)
	if parent == nil {
		return errResponse(req.RequestID, ErrPathNotFound)
	}
	node := tree.FindChild(parent, name)
	if node == nil {
		return errResponse(req.RequestID, ErrPathNotFound)
	}
	if node.IsDir() != wantDir {
		return errResponse(req.RequestID, ErrNotADirectory)
	}

	if wantDir {
		if len(node.Children) > 0 {
			return errResponse(req.RequestID, ErrDirectoryNotEmpty)
		}
		if node.Block > volume.ReservedBlocks-1 {
			s.bitmap.Free(node.Block, 1)
		}
	} else {
		blocksUsed := volume.BlocksNeeded(node.Entry.Size, s.header.BlockSize)
		if node.Entry.StartBlock > volume.ReservedBlocks-1 {
			s.bitmap.Free(node.Entry.StartBlock, blocksUsed)
		}
	}

	if err := s.vol.ClearDirSlot(parent.Block, node.Slot); err != nil {
		return errResponse(req.RequestID, ErrDiskFull)
	}
	tree.RemoveChild(parent, name)

	logger.Debug("deleted %q under inode %d", name, parent.Entry.Inode)
	return wire.Success(req.RequestID, map[string]any{"name": name})
}

// findFreeUserSlot scans the cached slot mirror for a reusable slot,
// per the reference rule: a slot is free if its username is empty or
// its active flag is false.
func (s *Server) findFreeUserSlot() (uint32, bool) {
	for i, rec := range s.slots {
		if rec.IsFree() {
			return uint32(i), true
		}
	}
	return 0, false
}

func (s *Server) findFreeDirSlot(block uint32) (int, bool) {
	raw, err := s.vol.ReadBlock(block)
	if err != nil {
		return 0, false
	}
	for i := 0; i < volume.EntriesPerDirBlock; i++ {
		start := i * volume.DirEntrySize
		if raw[start] == 0 {
			return i, true
		}
	}
	return 0, false
}

// splitParent splits a cleaned absolute path into its parent
// directory path and final component name.
func splitParent(p string) (parentPath, name string) {
	if p == "" || p == "/" {
		return "/", ""
	}
	trimmed := p
	for len(trimmed) > 1 && trimmed[len(trimmed)-1] == '/' {
		trimmed = trimmed[:len(trimmed)-1]
	}
	idx := -1
	for i := len(trimmed) - 1; i >= 0; i-- {
		if trimmed[i] == '/' {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return "/", trimmed[idx+1:]
	}
	return trimmed[:idx], trimmed[idx+1:]
}
