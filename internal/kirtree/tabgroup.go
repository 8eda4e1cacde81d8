package kirtree

// stateOf extracts the *TabGroupState from a TabGroup component, or nil
// if c is not a TabGroup or has no CustomData yet.
func stateOf(c *Component) *TabGroupState {
	if c == nil {
		return nil
	}
	s, ok := c.CustomData.(*TabGroupState)
	if !ok {
		return nil
	}
	return s
}

// Select validates 0 <= i < tab_count (no-op otherwise, spec §8
// boundary), swaps the content region's single child to panels[i], and
// re-applies tab visuals (spec §4.2 TabGroup contract).
func Select(c *Component, i int) { selectTab(c, i) }

func selectTab(c *Component, i int) {
	s := stateOf(c)
	if s == nil {
		return
	}
	if i < 0 || i >= len(s.Tabs) {
		return
	}

	// Notify "removed" for every currently-visible panel != target.
	for idx, panel := range s.Panels {
		if idx == i {
			continue
		}
		if isChildOf(s.Content, panel) {
			if s.OnRemoved != nil {
				s.OnRemoved(idx)
			}
		}
	}

	// Content holds at most one panel, so detaching stays O(1).
	for _, visible := range s.Content.Children {
		visible.Parent = nil
	}
	s.Content.Children = nil
	if i < len(s.Panels) {
		AddChild(s.Content, s.Panels[i])
	}
	if s.OnAdded != nil {
		s.OnAdded(i)
	}

	s.SelectedIndex = i
	markDirty(s.Content, DirtyChildren)
	markDirty(s.Group, DirtyLayout)
	if s.Group.Parent != nil {
		markDirty(rootOf(s.Group), DirtyLayout)
	}

	applyTabVisuals(s)
}

func isChildOf(parent, child *Component) bool {
	for _, c := range parent.Children {
		if c == child {
			return true
		}
	}
	return false
}

func rootOf(c *Component) *Component {
	for c.Parent != nil {
		c = c.Parent
	}
	return c
}

// Reorder moves the tab at from to to, the matching panel (if
// panel_count == tab_count), and the bar's visible child at the same
// index. Selection tracks the originally-selected *tab*, not index,
// then re-applies via Select (spec §4.2).
func Reorder(c *Component, from, to int) {
	s := stateOf(c)
	if s == nil {
		return
	}
	n := len(s.Tabs)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}

	selectedTab := s.Tabs[s.SelectedIndex]

	moveSlice(s.Tabs, from, to)
	if len(s.Panels) == len(s.Tabs) {
		moveSlice(s.Panels, from, to)
	}
	if len(s.Visuals) == len(s.Tabs) {
		moveSlice(s.Visuals, from, to)
	}
	if len(s.Bar.Children) == n {
		moveSlice(s.Bar.Children, from, to)
		markDirty(s.Bar, DirtyChildren)
	}

	newSelected := s.SelectedIndex
	for idx, t := range s.Tabs {
		if t == selectedTab {
			newSelected = idx
			break
		}
	}
	s.SelectedIndex = newSelected
	selectTab(c, newSelected)
}

func moveSlice[T any](s []T, from, to int) {
	v := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = v
}

// HandleDrag drives the drag state machine: down begins a drag and
// immediately selects the tab under (x,y); motion reorders across a
// neighbor's midpoint; up ends the drag (spec §4.2).
func HandleDrag(c *Component, x, y float64, down, up bool) {
	s := stateOf(c)
	if s == nil || !s.Reorderable {
		return
	}

	if down {
		idx, ok := tabAtPoint(s, x, y)
		if !ok {
			return
		}
		s.Dragging = true
		s.DragIndex = idx
		s.DragX = x
		selectTab(c, idx)
		return
	}

	if up {
		s.Dragging = false
		return
	}

	if !s.Dragging {
		return
	}
	s.DragX = x

	if s.DragIndex > 0 {
		if neighbor := s.Tabs[s.DragIndex-1]; x < midpointX(neighbor) {
			Reorder(c, s.DragIndex, s.DragIndex-1)
			s.DragIndex--
			return
		}
	}
	if s.DragIndex < len(s.Tabs)-1 {
		if neighbor := s.Tabs[s.DragIndex+1]; x > midpointX(neighbor) {
			Reorder(c, s.DragIndex, s.DragIndex+1)
			s.DragIndex++
		}
	}
}

func midpointX(c *Component) float64 {
	return c.Bounds.X + c.Bounds.W/2
}

func tabAtPoint(s *TabGroupState, x, y float64) (int, bool) {
	for i, t := range s.Tabs {
		if !t.Bounds.Valid {
			continue
		}
		if x >= t.Bounds.X && x < t.Bounds.X+t.Bounds.W && y >= t.Bounds.Y && y < t.Bounds.Y+t.Bounds.H {
			return i, true
		}
	}
	return -1, false
}

// Finalize extracts per-tab visual colors from each tab's attached
// Style (a "first paint" snapshot — spec §9 Open Question: intentional,
// not re-captured on later mutation), clamps SelectedIndex into range,
// and calls Select to re-apply (spec §4.2).
func Finalize(c *Component) {
	s := stateOf(c)
	if s == nil {
		return
	}

	s.Visuals = make([]TabVisuals, len(s.Tabs))
	for i, tab := range s.Tabs {
		v := TabVisuals{
			Background:       TransparentColor(),
			ActiveBackground: TransparentColor(),
			Text:             SolidColor(0, 0, 0, 255),
			ActiveText:       SolidColor(0, 0, 0, 255),
		}
		if tab.Style != nil {
			v.Background = tab.Style.Background
			v.Text = tab.Style.Font.Color
			v.ActiveBackground = tab.Style.Background
			v.ActiveText = tab.Style.Font.Color
		}
		s.Visuals[i] = v
	}

	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	if len(s.Tabs) > 0 && s.SelectedIndex >= len(s.Tabs) {
		s.SelectedIndex = len(s.Tabs) - 1
	}
	if len(s.Tabs) == 0 {
		return
	}
	selectTab(c, s.SelectedIndex)
}

func applyTabVisuals(s *TabGroupState) {
	for i, tab := range s.Tabs {
		if i >= len(s.Visuals) || tab.Style == nil {
			continue
		}
		v := s.Visuals[i]
		if i == s.SelectedIndex {
			tab.Style.Background = v.ActiveBackground
			tab.Style.Font.Color = v.ActiveText
		} else {
			tab.Style.Background = v.Background
			tab.Style.Font.Color = v.Text
		}
		markDirty(tab, DirtyStyle)
	}
}

// AddTab appends a tab/panel pair to a TabGroup, wiring the tab into
// Bar and both into the state's Tabs/Panels lists. The panel is not attached to
// Content until Select chooses it.
func AddTab(ctx *IRContext, group, tab, panel *Component) {
	s := stateOf(group)
	if s == nil {
		return
	}
	AddChild(s.Bar, tab)
	s.Tabs = append(s.Tabs, tab)
	s.Panels = append(s.Panels, panel)
}
