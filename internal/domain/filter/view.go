package filter

// Sections returns the section blocks in document order. The result is
// computed from Blocks on every call.
func (s *Script) Sections() []*SectionBlock {
	var sections []*SectionBlock
	for _, block := range s.Blocks {
		if section, ok := block.(*SectionBlock); ok {
			sections = append(sections, section)
		}
	}
	return sections
}

// Rules returns the rule blocks in document order.
func (s *Script) Rules() []*RuleBlock {
	var rules []*RuleBlock
	for _, block := range s.Blocks {
		if rule, ok := block.(*RuleBlock); ok {
			rules = append(rules, rule)
		}
	}
	return rules
}

// BlockAt returns the block at index, or a NOT_FOUND error.
func (s *Script) BlockAt(index int) (Block, error) {
	if index < 0 || index >= len(s.Blocks) {
		return nil, newNotFoundError("block index").WithContext(map[string]interface{}{
			"index": index,
			"count": len(s.Blocks),
		})
	}
	return s.Blocks[index], nil
}
