// Package tui implements a terminal client for the bug tracker. Built on
// bubbletea (Elm architecture): key presses become API calls run as
// commands, and their results come back as messages that are folded into
// a [board.State]. Nothing on screen changes until the server has
// answered.
//
// Data flow:
//
//	[bug API] <- client.Client <- tea.Cmd
//	        | (result messages)
//	    [Model] -> board.Reduce
//	        |
//	  [terminal output]
package tui
