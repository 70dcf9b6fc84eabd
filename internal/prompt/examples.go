package prompt

// examples is the worked-example catalog shown in every prompt, one block per
// algorithm family.
const examples = `EXAMPLES:

Linear Search (target 8 in [5,2,8,1]):
FRAME|0|array|5,2,8,1 highlights:indices=0 colors=yellow|i=0 target=8|7|Start search - checking index 0
FRAME|1|array|5,2,8,1 highlights:indices=0,1 colors=grey,yellow|i=1 target=8|8|Checking arr[1]=2
FRAME|2|array|5,2,8,1 highlights:indices=0,1,2 colors=grey,grey,yellow|i=2 target=8|8|Checking arr[2]=8
FRAME|3|array|5,2,8,1 highlights:indices=2 colors=green|found=true index=2|10|Element 8 FOUND at index 2

Binary Search (target 22 in [11,12,22,25,34,45,50]):
FRAME|0|array|11,12,22,25,34,45,50 highlights:indices=3 colors=yellow|left=0 right=6 mid=3 target=22|11|Check mid=3, arr[3]=25
FRAME|1|array|11,12,22,25,34,45,50 highlights:indices=1 colors=yellow|left=0 right=2 mid=1 target=22|11|Target<25, check left half mid=1
FRAME|2|array|11,12,22,25,34,45,50 highlights:indices=2 colors=green|found=true index=2|15|Element 22 FOUND at index 2

Not found (target 99 in [5,2]):
FRAME|0|array|5,2 highlights:indices=0 colors=yellow|i=0 target=99|7|Checking index 0
FRAME|1|array|5,2 highlights:indices=0,1 colors=grey,yellow|i=1 target=99|8|Checking index 1
FRAME|2|array|5,2|found=false|11|Element 99 NOT FOUND in array

Bubble Sort ([5,2,8]):
FRAME|0|array|5,2,8 highlights:indices=0,1 colors=yellow,yellow|i=0 j=0|4|Compare 5 and 2
FRAME|1|array|2,5,8 highlights:indices=0,1 colors=red,red|i=0 j=0|5|Swap 5 and 2
FRAME|2|array|2,5,8 highlights:indices=1,2 colors=yellow,yellow|i=0 j=1|4|Compare 5 and 8
FRAME|3|array|2,5,8 highlights:indices=0,1,2 colors=green,green,green|i=1|8|Array fully sorted

BST insert (20,8,22):
FRAME|0|tree|values:20 structure:|root=20|10|Insert 20 as root
FRAME|1|tree|values:20,8 structure:0L1|root=20 current=8|12|Insert 8 to the left of 20
FRAME|2|tree|values:20,8,22 structure:0L1-0R2|root=20 current=22|14|Insert 22 to the right of 20

Linked list traversal (1->2->3):
FRAME|0|linkedlist|1->2->3->NULL highlights:indices=0 colors=yellow|current=1|10|Traverse: at node 1
FRAME|1|linkedlist|1->2->3->NULL highlights:indices=1 colors=yellow|current=2|10|Traverse: at node 2
FRAME|2|linkedlist|1->2->3->NULL highlights:indices=2 colors=green|current=3|12|Traversal finished at tail

Stack push/pop:
FRAME|0|stack|5 highlights:indices=0 colors=yellow|top=5 size=1|10|Push 5
FRAME|1|stack|5,3 highlights:indices=1 colors=yellow|top=3 size=2|11|Push 3 on top of 5
FRAME|2|stack|5 highlights:indices=0 colors=green|top=5 size=1|16|Pop 3, 5 is the new top

Infix "A+B" to postfix (operators only on the stack):
FRAME|0|stack||out="" c='A'|10|A is an operand, add to output
FRAME|1|stack|+ highlights:indices=0 colors=yellow|out="A" c='+'|12|Push + to stack
FRAME|2|stack|+|out="AB" c='B'|10|B is an operand, add to output
FRAME|3|stack||out="AB+"|15|Pop + to output, conversion complete

Queue enqueue/dequeue:
FRAME|0|queue|5 front_index:0 rear_index:0 highlights:indices=0 colors=yellow|front=0 rear=0 size=1|10|Enqueue 5
FRAME|1|queue|5,3 front_index:0 rear_index:1 highlights:indices=1 colors=yellow|front=0 rear=1 size=2|11|Enqueue 3 at rear
FRAME|2|queue|3 front_index:0 rear_index:0 highlights:indices=0 colors=green|front=0 rear=0 size=1|16|Dequeue 5, 3 is the new front

Topological sort (edges 5>2, 5>0, 4>0, 4>1, 2>3, 3>1):
FRAME|0|graph|nodes:0,1,2,3,4,5 edges:5>2,5>0,4>0,4>1,2>3,3>1 visited:|V=6|10|Computing indegrees for all nodes
FRAME|1|graph|nodes:0,1,2,3,4,5 edges:5>2,5>0,4>0,4>1,2>3,3>1 visited:4|u=4|25|Processing node 4 from queue
FRAME|2|graph|nodes:0,1,2,3,4,5 edges:5>2,5>0,4>0,4>1,2>3,3>1 visited:4,5,2,0,3,1|done=true|40|Topological sort complete`

const completionRules = `COMPLETION REQUIREMENTS:
1. SORTING: the last frame MUST show the FULLY SORTED array.
2. SEARCHING: the last frame MUST say "Element X FOUND at index Y" or "Element X NOT FOUND" and include found=true or found=false.
3. TREE: the last frame MUST show the complete tree structure.
4. GRAPH: the last frame MUST show all visited nodes or the complete path.
5. LINKED LIST: the last description MUST say the operation is complete or show the final list.
6. Show EVERY comparison, swap and recursive call. Do not stop until the algorithm is 100% complete.`
