package serialize

import "github.com/kryonlabs/kryon-ir/internal/kirtree"

func componentToDoc(c *kirtree.Component) *ComponentDoc {
	if c == nil {
		return nil
	}
	d := &ComponentDoc{
		ID:       uint32(c.ID),
		Type:     c.Type.String(),
		ZIndex:   c.ZIndex,
		Disabled: c.Disabled,
		Scope:    c.Scope,
	}
	if c.Tag != nil {
		d.Tag = *c.Tag
	}
	d.TextContent = c.TextContent
	if c.ModuleRef != nil {
		d.ModuleRef = c.ModuleRef.Module
		d.ExportName = c.ModuleRef.Export
	}
	d.CustomData = customDataToDoc(c.CustomData)
	for _, child := range c.Children {
		d.Children = append(d.Children, componentToDoc(child))
	}
	for e := c.Events; e != nil; e = e.Next {
		d.Events = append(d.Events, eventToDoc(e))
	}
	for l := c.Logic; l != nil; l = l.Next {
		d.Logic = append(d.Logic, logicToDoc(l))
	}
	if c.Style != nil {
		d.Style = styleToDoc(c.Style)
	}
	if c.Layout != nil {
		d.Layout = layoutToDoc(c.Layout)
	}
	return d
}

func docToComponent(ctx *kirtree.IRContext, d *ComponentDoc, parent *kirtree.Component) *kirtree.Component {
	if d == nil {
		return nil
	}
	t, _ := kirtree.ComponentTypeFromString(d.Type)
	c := kirtree.NewComponentIn(ctx, t)
	if c == nil {
		return nil
	}
	ctx.AdoptID(c, kirtree.ComponentID(d.ID))
	c.ZIndex = d.ZIndex
	c.Disabled = d.Disabled
	c.Scope = d.Scope
	if d.Tag != "" {
		tag := d.Tag
		c.Tag = &tag
	}
	c.TextContent = d.TextContent
	if d.ModuleRef != "" || d.ExportName != "" {
		c.ModuleRef = &kirtree.ModuleRef{Module: d.ModuleRef, Export: d.ExportName}
	}
	if d.Style != nil {
		c.Style = docToStyle(d.Style)
	}
	if d.Layout != nil {
		c.Layout = docToLayout(d.Layout)
	}
	for i := len(d.Events) - 1; i >= 0; i-- {
		c.Events = kirtree.PushEvent(c.Events, docToEvent(d.Events[i]))
	}
	for i := len(d.Logic) - 1; i >= 0; i-- {
		e := docToLogic(d.Logic[i])
		e.Next = c.Logic
		c.Logic = e
	}
	if parent != nil {
		kirtree.AddChild(parent, c)
	}
	for _, childDoc := range d.Children {
		docToComponent(ctx, childDoc, c)
	}
	// Custom data last: a TabGroup's state references descendants by id,
	// so the subtree must be built (and its ids adopted) before relinking.
	c.CustomData = docToCustomData(ctx, d.CustomData)
	return c
}

func eventToDoc(e *kirtree.Event) *EventDoc {
	d := &EventDoc{
		Type:           eventTypeNames[e.Type],
		Name:           e.Name,
		LogicID:        e.LogicID,
		HandlerData:    e.HandlerData,
		BytecodeFuncID: e.BytecodeFuncID,
	}
	if e.HandlerSource != nil {
		d.HandlerSource = &HandlerSourceDoc{
			Language: e.HandlerSource.Language,
			Code:     e.HandlerSource.Code,
			File:     e.HandlerSource.File,
			Line:     e.HandlerSource.Line,
			Closure:  e.HandlerSource.Closure,
		}
	}
	return d
}

func docToEvent(d *EventDoc) *kirtree.Event {
	e := &kirtree.Event{
		Type:           eventTypesByName[d.Type],
		Name:           d.Name,
		LogicID:        d.LogicID,
		HandlerData:    d.HandlerData,
		BytecodeFuncID: d.BytecodeFuncID,
	}
	if d.HandlerSource != nil {
		e.HandlerSource = &kirtree.HandlerSource{
			Language: d.HandlerSource.Language,
			Code:     d.HandlerSource.Code,
			File:     d.HandlerSource.File,
			Line:     d.HandlerSource.Line,
			Closure:  d.HandlerSource.Closure,
		}
	}
	return e
}

func logicToDoc(l *kirtree.Logic) *LogicDoc {
	return &LogicDoc{ID: l.ID, SourceType: logicSourceNames[l.SourceType], SourceCode: l.SourceCode}
}

func docToLogic(d *LogicDoc) *kirtree.Logic {
	return &kirtree.Logic{ID: d.ID, SourceType: logicSourceByName[d.SourceType], SourceCode: d.SourceCode}
}

func customDataToDoc(cd kirtree.CustomData) *CustomDataDoc {
	switch v := cd.(type) {
	case *kirtree.TabGroupState:
		td := &TabGroupDoc{
			SelectedIndex: v.SelectedIndex,
			Reorderable:   v.Reorderable,
		}
		if v.Group != nil {
			td.GroupID = uint32(v.Group.ID)
		}
		if v.Bar != nil {
			td.BarID = uint32(v.Bar.ID)
		}
		if v.Content != nil {
			td.ContentID = uint32(v.Content.ID)
		}
		for _, tab := range v.Tabs {
			td.TabIDs = append(td.TabIDs, uint32(tab.ID))
		}
		for _, panel := range v.Panels {
			td.PanelIDs = append(td.PanelIDs, uint32(panel.ID))
			// Only the selected panel is a live child of the content
			// region; the rest exist solely through the state and must be
			// carried by value or they are lost.
			if panel.Parent == nil {
				td.DetachedPanels = append(td.DetachedPanels, componentToDoc(panel))
			}
		}
		return &CustomDataDoc{Kind: "TabGroup", TabGroup: td}
	case *kirtree.TableState:
		return &CustomDataDoc{
			Kind:  "Table",
			Table: &TableDoc{SelectedRow: v.SelectedRow, SortColumn: v.SortColumn, SortAsc: v.SortAsc},
		}
	default:
		return nil
	}
}

func docToCustomData(ctx *kirtree.IRContext, d *CustomDataDoc) kirtree.CustomData {
	if d == nil {
		return nil
	}
	switch d.Kind {
	case "TabGroup":
		if d.TabGroup == nil {
			return &kirtree.TabGroupState{}
		}
		td := d.TabGroup
		s := &kirtree.TabGroupState{
			SelectedIndex: td.SelectedIndex,
			Reorderable:   td.Reorderable,
		}
		detached := make(map[uint32]*ComponentDoc, len(td.DetachedPanels))
		for _, pd := range td.DetachedPanels {
			detached[pd.ID] = pd
		}
		// Attached references resolve through the id map; detached panels
		// are rebuilt from their carried documents (Parent stays nil until
		// Select attaches them).
		resolve := func(id uint32) *kirtree.Component {
			if id == 0 {
				return nil
			}
			if c, ok := ctx.FindByID(kirtree.ComponentID(id)); ok {
				return c
			}
			if pd, ok := detached[id]; ok {
				return docToComponent(ctx, pd, nil)
			}
			return nil
		}
		s.Group = resolve(td.GroupID)
		s.Bar = resolve(td.BarID)
		s.Content = resolve(td.ContentID)
		for _, id := range td.TabIDs {
			if tab := resolve(id); tab != nil {
				s.Tabs = append(s.Tabs, tab)
			}
		}
		for _, id := range td.PanelIDs {
			if panel := resolve(id); panel != nil {
				s.Panels = append(s.Panels, panel)
			}
		}
		return s
	case "Table":
		if d.Table == nil {
			return &kirtree.TableState{}
		}
		return &kirtree.TableState{SelectedRow: d.Table.SelectedRow, SortColumn: d.Table.SortColumn, SortAsc: d.Table.SortAsc}
	default:
		return nil
	}
}

var eventTypeNames = map[kirtree.EventType]string{
	kirtree.EventClick:  "Click",
	kirtree.EventHover:  "Hover",
	kirtree.EventFocus:  "Focus",
	kirtree.EventBlur:   "Blur",
	kirtree.EventKey:    "Key",
	kirtree.EventScroll: "Scroll",
	kirtree.EventTimer:  "Timer",
	kirtree.EventCustom: "Custom",
}

var eventTypesByName = invertEventNames()

func invertEventNames() map[string]kirtree.EventType {
	m := make(map[string]kirtree.EventType, len(eventTypeNames))
	for k, v := range eventTypeNames {
		m[v] = k
	}
	return m
}

var logicSourceNames = map[kirtree.LogicSourceType]string{
	kirtree.LogicLua:    "Lua",
	kirtree.LogicC:      "C",
	kirtree.LogicWASM:   "WASM",
	kirtree.LogicNative: "Native",
}

var logicSourceByName = invertLogicNames()

func invertLogicNames() map[string]kirtree.LogicSourceType {
	m := make(map[string]kirtree.LogicSourceType, len(logicSourceNames))
	for k, v := range logicSourceNames {
		m[v] = k
	}
	return m
}
