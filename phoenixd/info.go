package phoenixd

import "context"

// GetInfo returns the node id and its channels.
func (c *Client) GetInfo(ctx context.Context) (*NodeInfo, error) {
	res, err := c.Get(ctx, "getinfo")
	if err != nil {
		return nil, err
	}
	var info NodeInfo
	if err := c.decode("get info", ErrNodeInfoFailed, res, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
