package prompt

import "algoviz/internal/viz"

// SystemPrompt is sent as the system instruction on every generation call.
const SystemPrompt = `You are an algorithm tracing engine for a teaching tool. You execute C/C++ programs by hand and report every state change as pipe-delimited FRAME lines. You never add commentary, markdown, or code fences.`

const preamble = `You are visualizing a C++ algorithm step-by-step.

TASK: Generate visualization frames in this EXACT format, one frame per line:
FRAME|frameId|dataStructureType|data|variables|lineNumber|description

RULES:
1. One line per frame. Output ONLY FRAME lines: no markdown fences, no headings, no explanations.
2. frameId starts at 0 and increases by exactly 1 for every frame.
3. dataStructureType is one of: array, tree, graph, linkedlist, stack, queue.
   - Use 'queue' for ANY queue structure (std::queue, circular queue, custom queue struct).
   - Use 'stack' for ANY stack structure (std::stack, custom stack struct).
4. data holds comma-separated values ONLY. Never mix metadata like "f:0 r:0 size:0" into values.
   - CORRECT: "10,20,30 front_index:0 rear_index:2"
   - WRONG: "10,20,30, , ,  f:0 r:0 size:0"
5. variables: space-separated name=value pairs with no spaces inside a value (e.g. "i=0 j=1").
6. lineNumber: the 1-indexed source line that caused this state. It must exist in the numbered code below.
7. description: a short sentence about what happened. Do not put newlines in it.
8. Never use the '|' character inside data or variables.`

// guides are appended only for structures detected in the source.
var guides = map[viz.PanelKind]string{
	viz.KindArray: `ARRAY FORMAT:
- data: "5,2,8,1" or "5,2,8,1 highlights:indices=0,2 colors=yellow,green"
- indices and colors are zipped positionally
- Yellow = currently checking, Grey = already checked, Green = found/final position, Red = swapped`,

	viz.KindTree: `TREE FORMAT:
- data: "values:20,8,22,4,12 structure:0L1-0R2-1L3-1R4" in ONE field, separated by a SPACE, never by a pipe
- values: node values in index order; write NULL for a removed node
- structure: parent-child links by index (0L1 = node 0's left child is node 1, 0R2 = node 0's right child is node 2)
- Show the complete tree in every frame`,

	viz.KindGraph: `GRAPH FORMAT:
- data: "nodes:0,1,2,3 edges:0-1,1-2,2>3 visited:0,1"
- nodes: list EVERY node id (integers)
- edges: "a-b" for an edge a to b, "a>b" to mark it directed; every endpoint must appear in nodes
- visited: nodes processed so far (rendered green)
- Show the GRAPH structure, never an auxiliary array such as indegree`,

	viz.KindLinkedList: `LINKED LIST FORMAT:
- data: "1->2->3->NULL" optionally followed by " highlights:indices=0 colors=yellow"
- ALWAYS show the COMPLETE list in EVERY frame, exactly ONE list per frame
- NEVER write more than one "->NULL" in a frame ("1->NULL 2->3->NULL" is WRONG)
- ALWAYS end with "->NULL" and use no spaces inside the chain`,

	viz.KindStack: `STACK FORMAT:
- data lists elements bottom-to-top: "5,3,8" means 5 is at the bottom and 8 is on top
- highlight the top element: yellow for push, green for pop
- always include top and size in variables
- an empty stack is an empty data field: "FRAME|3|stack||top=-1 size=0|12|Stack empty"
- for expression conversion only OPERATORS go on the stack; operands go to an output variable`,

	viz.KindQueue: `QUEUE FORMAT:
- data lists elements front-to-rear followed by "front_index:N rear_index:M"
- example: "5,3,8 front_index:0 rear_index:2 highlights:indices=2 colors=yellow"
- yellow for enqueue, green for dequeue
- always include front, rear and size in variables
- circular queues and custom queue structs still use 'queue', never 'array'`,
}
