//
//  Copyright © Altinn. All rights reserved.
//

package common

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrettyPrint writes a readable JSON representation of the provided data
// structure to the writer.
func PrettyPrint(w io.Writer, data interface{}) {
	p, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		fmt.Fprintln(w, err)
	} else {
		fmt.Fprintf(w, "%s\n", p)
	}
}
