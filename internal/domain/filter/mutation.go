package filter

// NewSectionDescription is the description given to sections created by
// AddSection.
const NewSectionDescription = "New Section"

// IndexOf returns the position of block in the script by identity, or -1.
func (s *Script) IndexOf(block Block) int {
	if block == nil {
		return -1
	}
	for i, candidate := range s.Blocks {
		if candidate == block {
			return i
		}
	}
	return -1
}

// InsertAfter places block directly after target. A nil target appends. The
// block's group is mapped onto this script's group table by path and its
// theme components are registered.
func (s *Script) InsertAfter(target, block Block) error {
	if block == nil {
		return NewDomainError(ErrCodeValidation, "block to insert is nil", nil, nil)
	}
	if existing := s.IndexOf(block); existing >= 0 {
		return newDuplicateBlockError(existing)
	}

	position := len(s.Blocks)
	if target != nil {
		index := s.IndexOf(target)
		if index < 0 {
			return newNotFoundError("target block")
		}
		position = index + 1
	}

	switch b := block.(type) {
	case *RuleBlock:
		b.Group = s.adoptGroup(b.Group)
		s.RegisterThemeComponents(b)
	case *SectionBlock:
	}

	s.Blocks = append(s.Blocks, nil)
	copy(s.Blocks[position+1:], s.Blocks[position:])
	s.Blocks[position] = block
	return nil
}

// AddBlock inserts a new empty Show block after target and returns it.
func (s *Script) AddBlock(target Block) (*RuleBlock, error) {
	block := NewRuleBlock()
	if err := s.InsertAfter(target, block); err != nil {
		return nil, err
	}
	return block, nil
}

// AddSection inserts a new section after target and returns it.
func (s *Script) AddSection(target Block) (*SectionBlock, error) {
	section := NewSectionBlock(NewSectionDescription)
	if err := s.InsertAfter(target, section); err != nil {
		return nil, err
	}
	return section, nil
}

// MoveToTop moves block to the first position. It reports false without an
// error when the block is already first.
func (s *Script) MoveToTop(block Block) (bool, error) {
	index := s.IndexOf(block)
	if index < 0 {
		return false, newNotFoundError("block")
	}
	if index == 0 {
		return false, nil
	}
	s.move(index, 0)
	return true, nil
}

// MoveUp swaps block with its predecessor.
func (s *Script) MoveUp(block Block) (bool, error) {
	index := s.IndexOf(block)
	if index < 0 {
		return false, newNotFoundError("block")
	}
	if index == 0 {
		return false, nil
	}
	s.move(index, index-1)
	return true, nil
}

// MoveDown swaps block with its successor.
func (s *Script) MoveDown(block Block) (bool, error) {
	index := s.IndexOf(block)
	if index < 0 {
		return false, newNotFoundError("block")
	}
	if index == len(s.Blocks)-1 {
		return false, nil
	}
	s.move(index, index+1)
	return true, nil
}

// MoveToBottom moves block to the last position.
func (s *Script) MoveToBottom(block Block) (bool, error) {
	index := s.IndexOf(block)
	if index < 0 {
		return false, newNotFoundError("block")
	}
	if index == len(s.Blocks)-1 {
		return false, nil
	}
	s.move(index, len(s.Blocks)-1)
	return true, nil
}

// Remove deletes block from the script. Confirmation is the caller's job.
func (s *Script) Remove(block Block) error {
	index := s.IndexOf(block)
	if index < 0 {
		return newNotFoundError("block")
	}
	s.Blocks = append(s.Blocks[:index], s.Blocks[index+1:]...)
	return nil
}

// move relocates the block at from so that it ends up at index to, shifting
// the blocks in between by one.
func (s *Script) move(from, to int) {
	block := s.Blocks[from]
	switch {
	case from < to:
		copy(s.Blocks[from:to], s.Blocks[from+1:to+1])
	case from > to:
		copy(s.Blocks[to+1:from+1], s.Blocks[to:from])
	}
	s.Blocks[to] = block
}
