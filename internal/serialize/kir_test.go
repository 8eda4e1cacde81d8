package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryonlabs/kryon-ir/internal/kirtree"
)

func buildSampleTree(t *testing.T) *kirtree.IRContext {
	t.Helper()
	ctx := kirtree.NewIRContext(0)
	ctx.Metadata = &kirtree.Metadata{Width: 800, Height: 600, Title: "demo"}

	root := kirtree.NewContainer(ctx)
	ctx.Root = root
	root.Layout.Flex.Direction = kirtree.FlexRow
	root.Layout.Flex.Gap = 8

	text := kirtree.NewTextComponent(ctx, "hello")
	kirtree.SetScope(text, "greeting")
	text.Style.Opacity = 0.75
	text.Style.Font.Bold = true
	text.Style.Font.Color = kirtree.ParseColor("#336699")
	text.Style.Width = kirtree.Percent(50)
	kirtree.AddChild(root, text)

	btn := kirtree.NewButtonComponent(ctx, "go")
	btn.ZIndex = 3
	btn.Events = kirtree.PushEvent(btn.Events, &kirtree.Event{
		Type: kirtree.EventClick, Name: "go",
		HandlerSource: &kirtree.HandlerSource{Language: "lua", Code: "counter = counter + 1"},
	})
	btn.Logic = &kirtree.Logic{ID: 1, SourceType: kirtree.LogicLua, SourceCode: "print('hi')"}
	kirtree.AddChild(root, btn)

	grad := &kirtree.Gradient{Kind: kirtree.GradientLinear, Angle: 45}
	grad.AddStop(kirtree.GradientStop{Position: 0, Color: kirtree.RGBA{R: 255, G: 0, B: 0, A: 255}})
	grad.AddStop(kirtree.GradientStop{Position: 1, Color: kirtree.RGBA{R: 0, G: 0, B: 255, A: 255}})
	fancy := kirtree.NewContainer(ctx)
	fancy.Style.Background = kirtree.Color{Kind: kirtree.ColorGradient, Gradient: grad}

	anim := kirtree.NewAnimation("pulse", 2)
	kf := &kirtree.Keyframe{Offset: 0.5}
	kf.AddProperty(kirtree.KeyframeProperty{Property: kirtree.PropOpacity, Number: 0.5, IsSet: true})
	anim.AddKeyframe(kf)
	fancy.Style.Animations = append(fancy.Style.Animations, anim)
	fancy.Style.Transitions = append(fancy.Style.Transitions, &kirtree.Transition{
		Property: kirtree.PropOpacity, Duration: 0.3, TriggerState: kirtree.PseudoHover,
	})
	fancy.Style.AddBreakpoint(kirtree.Breakpoint{
		Condition: kirtree.BreakpointCondition{MaxWidth: 480},
	})
	fancy.Layout.Mode = kirtree.LayoutGrid
	fancy.Layout.Grid.AddColTrack(kirtree.GridTrack{Kind: kirtree.TrackFR, Value: 1})
	fancy.Layout.Grid.AddColTrack(kirtree.GridTrack{Kind: kirtree.TrackPX, Value: 200})
	kirtree.AddChild(root, fancy)

	return ctx
}

func TestRoundTrip(t *testing.T) {
	ctx := buildSampleTree(t)
	doc := Serialize(ctx)
	data, err := Marshal(doc)
	require.NoError(t, err)

	doc2, err := Unmarshal(data)
	require.NoError(t, err)

	ctx2 := kirtree.NewIRContext(0)
	root2 := Deserialize(doc2, ctx2)
	require.NotNil(t, root2)

	assert.Equal(t, ctx.Metadata.Title, ctx2.Metadata.Title)
	assert.Equal(t, ctx.Metadata.Width, ctx2.Metadata.Width)

	require.Len(t, root2.Children, 3)

	text2 := root2.Children[0]
	assert.Equal(t, kirtree.Text, text2.Type)
	require.NotNil(t, text2.TextContent)
	assert.Equal(t, "hello", *text2.TextContent)
	assert.Equal(t, "greeting", text2.Scope)
	assert.Equal(t, 0.75, text2.Style.Opacity)
	assert.True(t, text2.Style.Font.Bold)
	assert.Equal(t, kirtree.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}, text2.Style.Font.Color.Solid)
	assert.Equal(t, kirtree.Percent(50), text2.Style.Width)

	btn2 := root2.Children[1]
	assert.Equal(t, 3, btn2.ZIndex)
	e, ok := kirtree.FindEvent(btn2.Events, kirtree.EventClick)
	require.True(t, ok)
	assert.Equal(t, "go", e.Name)
	require.NotNil(t, e.HandlerSource)
	assert.Equal(t, "counter = counter + 1", e.HandlerSource.Code)
	require.NotNil(t, btn2.Logic)
	assert.Equal(t, kirtree.LogicLua, btn2.Logic.SourceType)
	assert.Equal(t, "print('hi')", btn2.Logic.SourceCode)

	fancy2 := root2.Children[2]
	require.Equal(t, kirtree.ColorGradient, fancy2.Style.Background.Kind)
	require.NotNil(t, fancy2.Style.Background.Gradient)
	assert.Equal(t, 45.0, fancy2.Style.Background.Gradient.Angle)
	require.Len(t, fancy2.Style.Background.Gradient.Stops, 2)
	assert.Equal(t, kirtree.RGBA{R: 0, G: 0, B: 255, A: 255}, fancy2.Style.Background.Gradient.Stops[1].Color)

	require.Len(t, fancy2.Style.Animations, 1)
	anim2 := fancy2.Style.Animations[0]
	assert.Equal(t, "pulse", anim2.Name)
	assert.Equal(t, 2.0, anim2.Duration)
	require.Len(t, anim2.Keyframes, 1)
	assert.Equal(t, 0.5, anim2.Keyframes[0].Offset)
	require.Len(t, anim2.Keyframes[0].Properties, 1)
	assert.Equal(t, 0.5, anim2.Keyframes[0].Properties[0].Number)

	require.Len(t, fancy2.Style.Transitions, 1)
	assert.Equal(t, kirtree.PseudoHover, fancy2.Style.Transitions[0].TriggerState)

	require.Len(t, fancy2.Style.Breakpoints, 1)
	assert.Equal(t, 480.0, fancy2.Style.Breakpoints[0].Condition.MaxWidth)

	assert.Equal(t, kirtree.LayoutGrid, fancy2.Layout.Mode)
	require.Len(t, fancy2.Layout.Grid.Cols, 2)
	assert.Equal(t, kirtree.TrackFR, fancy2.Layout.Grid.Cols[0].Kind)
	assert.Equal(t, 200.0, fancy2.Layout.Grid.Cols[1].Value)

	assert.Equal(t, kirtree.FlexRow, root2.Layout.Flex.Direction)
	assert.Equal(t, 8.0, root2.Layout.Flex.Gap)

	// Hash consistency in the deserialized context.
	got, ok := ctx2.FindByID(text2.ID)
	require.True(t, ok)
	assert.Same(t, text2, got)
}

func TestRoundTripPreservesIDs(t *testing.T) {
	ctx := buildSampleTree(t)
	data, err := Marshal(Serialize(ctx))
	require.NoError(t, err)
	doc, err := Unmarshal(data)
	require.NoError(t, err)

	ctx2 := kirtree.NewIRContext(0)
	root2 := Deserialize(doc, ctx2)
	require.NotNil(t, root2)

	var maxID kirtree.ComponentID
	var walk func(a, b *kirtree.Component)
	walk = func(a, b *kirtree.Component) {
		assert.Equal(t, a.ID, b.ID)
		if b.ID > maxID {
			maxID = b.ID
		}
		got, ok := ctx2.FindByID(b.ID)
		require.True(t, ok)
		assert.Same(t, b, got)
		require.Equal(t, len(a.Children), len(b.Children))
		for i := range a.Children {
			walk(a.Children[i], b.Children[i])
		}
	}
	walk(ctx.Root, root2)

	// The id counter advanced past the restored ids: fresh allocations
	// never collide with a persisted component.
	fresh := kirtree.NewComponentIn(ctx2, kirtree.Text)
	assert.Greater(t, fresh.ID, maxID)
}

func TestRoundTripTabGroupCustomData(t *testing.T) {
	ctx := kirtree.NewIRContext(0)
	group := kirtree.NewTabGroupComponent(ctx)
	ctx.Root = group
	for i := 0; i < 3; i++ {
		tab := kirtree.NewButtonComponent(ctx, "tab")
		panel := kirtree.NewContainer(ctx)
		kirtree.AddTab(ctx, group, tab, panel)
	}
	kirtree.Finalize(group)
	kirtree.Select(group, 1)
	state := group.CustomData.(*kirtree.TabGroupState)
	state.Reorderable = false

	data, err := Marshal(Serialize(ctx))
	require.NoError(t, err)
	doc, err := Unmarshal(data)
	require.NoError(t, err)

	ctx2 := kirtree.NewIRContext(0)
	root2 := Deserialize(doc, ctx2)
	state2, ok := root2.CustomData.(*kirtree.TabGroupState)
	require.True(t, ok)
	assert.Equal(t, 1, state2.SelectedIndex)
	assert.False(t, state2.Reorderable)

	// The references relinked against the rebuilt tree.
	assert.Same(t, root2, state2.Group)
	require.NotNil(t, state2.Bar)
	require.NotNil(t, state2.Content)
	assert.Equal(t, kirtree.TabBar, state2.Bar.Type)
	assert.Equal(t, kirtree.TabContent, state2.Content.Type)
	require.Len(t, state2.Tabs, 3)
	require.Len(t, state2.Panels, 3)
	for i, tab := range state2.Tabs {
		assert.Equal(t, state.Tabs[i].ID, tab.ID)
		assert.Same(t, state2.Bar.Children[i], tab)
	}
	for i, panel := range state2.Panels {
		assert.Equal(t, state.Panels[i].ID, panel.ID)
	}
	require.Len(t, state2.Content.Children, 1)
	assert.Same(t, state2.Panels[1], state2.Content.Children[0])

	// The group is functional: the detached panels survived the trip.
	kirtree.Finalize(root2)
	kirtree.Select(root2, 2)
	require.Len(t, state2.Content.Children, 1)
	assert.Same(t, state2.Panels[2], state2.Content.Children[0])
}

func TestModuleRefClearRestore(t *testing.T) {
	ctx := kirtree.NewIRContext(0)
	root := kirtree.NewContainer(ctx)
	ctx.Root = root
	child := kirtree.NewTextComponent(ctx, "x")
	child.ModuleRef = &kirtree.ModuleRef{Module: "widgets", Export: "Card"}
	kirtree.AddChild(root, child)

	entries := ClearTreeModuleRefs(root)
	require.Len(t, entries, 1)
	assert.Nil(t, child.ModuleRef)
	assert.Equal(t, "widgets", entries[0].Module)

	RestoreTreeModuleRefs(ctx, entries)
	require.NotNil(t, child.ModuleRef)
	assert.Equal(t, "Card", child.ModuleRef.Export)
}

func TestModuleRefStringVariant(t *testing.T) {
	ctx := kirtree.NewIRContext(0)
	root := kirtree.NewContainer(ctx)
	ctx.Root = root
	child := kirtree.NewTextComponent(ctx, "x")
	child.ModuleRef = &kirtree.ModuleRef{Module: "m", Export: "E"}
	kirtree.AddChild(root, child)

	m := ClearTreeModuleRefsString(root)
	assert.Equal(t, "m|E", m[uint32(child.ID)])
	assert.Nil(t, child.ModuleRef)

	RestoreTreeModuleRefsString(ctx, m)
	require.NotNil(t, child.ModuleRef)
	assert.Equal(t, "m", child.ModuleRef.Module)
	assert.Equal(t, "E", child.ModuleRef.Export)
}
