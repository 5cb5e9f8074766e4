package session

// DemoSeed is the sample document loaded into the input surface when the
// editor runs in demo mode, so first-time visitors see the live preview
// working immediately.
const DemoSeed = `Try editing this text!

# Heading 1
## Heading 2
### Heading 3

Lorem **ipsum** [dolor **sit amet** consectetur](https://example.com) adipisicing elit. ` + "`Nostrum assumenda fuga enim`" + ` ullam impedit quibusdam necessitatibus excepturi earum.

- list
- list
    - [link](https://example.com)
    - <https://example.com>
- list
    - **list**
- list

` + "```go" + `
package main

import "log"

func main() {
	log.Println("Hello, world!")
}
` + "```" + `
`
