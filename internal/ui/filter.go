package ui

import "dataspect/internal/engine"

// openFilterPopup starts the editor with a copy of the applied filters.
// Only the preview tab filters.
func (m *Model) openFilterPopup() {
	if m.inspectorTab != tabPreview {
		return
	}
	conditions := make([]engine.Condition, len(m.filters))
	copy(conditions, m.filters)
	m.filter = filterEditor{
		conditions:  conditions,
		columnIdx:   0,
		operatorIdx: 0,
		value:       "",
		active:      fieldColumn,
	}
	m.popup = popupFilter
}

// filterTabNext advances the active field. Unary operators take no value,
// so the value field is skipped for them.
func (m *Model) filterTabNext() {
	op := engine.Operators[m.filter.operatorIdx]
	switch m.filter.active {
	case fieldColumn:
		m.filter.active = fieldOperator
	case fieldOperator:
		if engine.IsUnary(op) {
			m.filter.active = fieldColumn
		} else {
			m.filter.active = fieldValue
		}
	case fieldValue:
		m.filter.active = fieldColumn
	}
}

func (m *Model) filterNavUp() {
	switch m.filter.active {
	case fieldColumn:
		if m.filter.columnIdx > 0 {
			m.filter.columnIdx--
		}
	case fieldOperator:
		if m.filter.operatorIdx > 0 {
			m.filter.operatorIdx--
		}
	}
}

func (m *Model) filterNavDown() {
	switch m.filter.active {
	case fieldColumn:
		if m.filter.columnIdx+1 < len(m.schema) {
			m.filter.columnIdx++
		}
	case fieldOperator:
		if m.filter.operatorIdx+1 < len(engine.Operators) {
			m.filter.operatorIdx++
		}
	}
}

func (m *Model) filterBackspace() {
	if m.filter.value == "" {
		return
	}
	runes := []rune(m.filter.value)
	m.filter.value = string(runes[:len(runes)-1])
}

// filterAddCondition appends the edited condition and resets the editor
// for the next one, keeping the column and operator selections.
func (m *Model) filterAddCondition() {
	if m.filter.columnIdx >= len(m.schema) {
		return
	}
	m.filter.conditions = append(m.filter.conditions, engine.Condition{
		Column:   m.schema[m.filter.columnIdx].Name,
		Operator: engine.Operators[m.filter.operatorIdx],
		Value:    m.filter.value,
	})
	m.filter.value = ""
	m.filter.active = fieldColumn
}

func (m *Model) filterRemoveLast() {
	if n := len(m.filter.conditions); n > 0 {
		m.filter.conditions = m.filter.conditions[:n-1]
	}
}

// filterApply commits the edited conditions, jumps back to page zero and
// reloads the preview under the new WHERE clause.
func (m *Model) filterApply() {
	m.filters = m.filter.conditions
	m.page = 0
	m.scroll = 0
	m.popup = popupNone
	m.reloadPreview()
}
