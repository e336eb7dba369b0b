// Package labelselect turns a host element (typically a <label>) into a
// dropdown selection control.
//
// Per-host configuration and selection live in a Registry, one per
// dom.Document. Every interaction goes through a single entry point:
//
//	reg := labelselect.NewRegistry(doc)
//	_, err := reg.Dispatch(ctx, host, labelselect.Configure{Partial: labelselect.Partial{
//	    "values": []labelselect.Option{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}},
//	}})
//	_, err = reg.Dispatch(ctx, host, labelselect.Command{Name: labelselect.CmdSetSelected, Arg: "b"})
//	id, _ := reg.Dispatch(ctx, host, labelselect.Command{Name: labelselect.CmdGetSelected})
//
// Control wraps the same calls with typed methods.
//
// # Rendering
//
// Each refresh rebuilds the host's subtree from scratch:
//
//	<label style="position: relative; height: 1.6em; display: inline-block; ...">
//	  <div class="labelSelect highlight-selection theme_white unfold_down">
//	    <span class="selected-none"></span>
//	    <ul>
//	      <li data-id="none" class="selected"></li>
//	      <li data-id="a">A</li>
//	    </ul>
//	  </div>
//	</label>
//
// With unfoldDir "up" the list comes before the span.
//
// # Events
//
// Semantic events are dispatched on the host (bubbling, no payload):
// change, selectOption, selectNone, refreshed, replacedLabel. The fold
// events unfolded and folded are dispatched on the container and bubble to
// the host.
package labelselect
