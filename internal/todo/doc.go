// Package todo defines the task model shown in the grid.
//
// Tasks are seeded from a remote todo endpoint whose items look like:
//
//	{
//	  "userId": 1,
//	  "id": 1,
//	  "title": "delectus aut autem",
//	  "completed": false
//	}
//
// and are mapped to a Task with one of three statuses.
//
// # Task Status Values
//
//   - "To Do": not started (every remote item with completed=false)
//   - "In Progress": being worked on (only reachable by local edits)
//   - "Done": complete (every remote item with completed=true)
//
// # Validation
//
// The only rule enforced on a task is a non-empty title after trimming
// surrounding whitespace.
package todo
