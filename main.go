// SPDX-License-Identifier: MPL-2.0

package main

import cmd "strata-cli/cmd/strata"

func main() {
	cmd.Execute()
}
